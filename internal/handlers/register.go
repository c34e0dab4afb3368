package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"alerscan/internal/auth"
	applog "alerscan/internal/log"
	"alerscan/internal/store"
	"alerscan/internal/views/components"
	"alerscan/internal/views/pages"
)

// Register displays the account creation form and processes new registrations.
func (h *Handlers) Register(ctx context.Context, req Request) Response {
	applog.Debug(ctx, "handling register request", "method", req.Method, "htmx", req.HTMX)

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		if req.Identity != nil {
			return Response{Redirect: scanPath}
		}
		return registerPage("", req.Notice)
	case http.MethodPost:
		if h.auth == nil {
			applog.Debug(ctx, "registration dependencies unavailable")
			return Response{Status: http.StatusServiceUnavailable}
		}

		username := req.Form.Get("username")
		password := req.Form.Get("password")
		confirm := req.Form.Get("confirm_password")

		user, err := h.auth.Register(ctx, username, password, confirm)
		if err != nil {
			return registerPage(username, components.Failure(registrationMessage(ctx, err)))
		}

		applog.Debug(ctx, "user created via registration", "userID", user.ID)
		return Response{
			Redirect: loginPath,
			Notice:   components.Success("Registration complete. Please log in."),
		}
	default:
		return Response{Status: http.StatusMethodNotAllowed}
	}
}

func registrationMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, auth.ErrPasswordTooLong):
		return fmt.Sprintf("Passwords must be at most %d bytes long.", auth.MaxPasswordBytes)
	case errors.Is(err, store.ErrDuplicateUsername):
		return "That username is already taken."
	case errors.Is(err, store.ErrValidation):
		return "Username and password are required."
	default:
		applog.Error(ctx, "failed to register user", "error", err)
		return "We couldn't create your account right now. Please try again."
	}
}

func registerPage(username string, notice components.Notice) Response {
	return Response{
		Title:   "Register",
		Content: pages.Register(pages.RegisterData{Username: username, Notice: notice}),
	}
}
