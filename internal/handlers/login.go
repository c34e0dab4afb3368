package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"alerscan/internal/auth"
	applog "alerscan/internal/log"
	"alerscan/internal/views/components"
	"alerscan/internal/views/pages"
)

const (
	messageInvalidCredentials = "Invalid username or password."
	messageLoginUnavailable   = "We were unable to sign you in. Please try again."
)

// Login renders the sign-in form and processes credentials.
func (h *Handlers) Login(ctx context.Context, req Request) Response {
	applog.Debug(ctx, "handling login request", "method", req.Method, "htmx", req.HTMX)

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		if req.Identity != nil {
			applog.Debug(ctx, "active session detected, redirecting to scanner")
			return Response{Redirect: scanPath}
		}
		return loginPage("", req.Notice)
	case http.MethodPost:
		if h.sessions == nil || h.auth == nil {
			applog.Debug(ctx, "authentication dependencies unavailable", "hasSession", h.sessions != nil, "hasAuth", h.auth != nil)
			return Response{Status: http.StatusServiceUnavailable}
		}

		username := req.Form.Get("username")
		password := req.Form.Get("password")
		if strings.TrimSpace(username) == "" || password == "" {
			applog.Debug(ctx, "login form missing credentials", "usernamePresent", username != "", "passwordPresent", password != "")
			return loginPage(username, components.Failure("Username and password are required."))
		}

		user, err := h.auth.Login(ctx, username, password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				applog.Debug(ctx, "authentication failed", "username", username)
				return loginPage(username, components.Failure(messageInvalidCredentials))
			}
			applog.Error(ctx, "failed to authenticate user", "error", err)
			return loginPage(username, components.Failure(messageLoginUnavailable))
		}

		applog.Debug(ctx, "authentication succeeded", "userID", user.ID)
		return Response{
			Redirect: scanPath,
			SignIn:   &Identity{UserID: user.ID, Username: user.Username},
		}
	default:
		applog.Debug(ctx, "method not allowed for login", "method", req.Method)
		return Response{Status: http.StatusMethodNotAllowed}
	}
}

func loginPage(username string, notice components.Notice) Response {
	return Response{
		Title:   "Log in",
		Content: pages.Login(pages.LoginData{Username: username, Notice: notice}),
	}
}
