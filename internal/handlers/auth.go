package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"alerscan/internal/labels"
	applog "alerscan/internal/log"
	"alerscan/internal/views/components"
	"alerscan/internal/views/layout"
)

const (
	loginPath = "/login"
	scanPath  = "/escanear"

	labelField = "etiqueta"

	// maxFormSize leaves room for the text fields next to a label upload.
	maxFormSize = labels.MaxUploadSize + 1<<20
)

var (
	errSessionsUnavailable = errors.New("session manager not configured")
	errLabelTooLarge       = errors.New("label exceeds the upload limit")
)

// Serve adapts an action to net/http: it builds the Request from the HTTP
// request and session, runs the action, and applies the Response.
func (h *Handlers) Serve(action Action) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, status := h.buildRequest(w, r)
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		resp := action(r.Context(), req)
		h.apply(w, r, req, resp)
	})
}

func (h *Handlers) buildRequest(w http.ResponseWriter, r *http.Request) (Request, int) {
	req := Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		Identity: h.identity(r),
		HTMX:     wantsPartial(r),
	}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		upload, err := parseForm(r)
		if err != nil {
			applog.Debug(r.Context(), "failed to parse form submission", "error", err)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || errors.Is(err, errLabelTooLarge) {
				return req, http.StatusRequestEntityTooLarge
			}
			return req, http.StatusBadRequest
		}
		req.Form = r.PostForm
		req.Upload = upload
	}

	// Notices wait for the next page view; form submissions leave them queued.
	if h.sessions != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		message := h.sessions.PopString(r.Context(), sessionNoticeKey)
		tone := h.sessions.PopString(r.Context(), sessionNoticeToneKey)
		req.Notice = components.Notice{Tone: tone, Message: message}
	}
	return req, 0
}

func parseForm(r *http.Request) (*labels.Upload, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, r.ParseForm()
	}
	if err := r.ParseMultipartForm(labels.MaxUploadSize); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(labelField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > labels.MaxUploadSize {
		return nil, errLabelTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, labels.MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > labels.MaxUploadSize {
		return nil, errLabelTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &labels.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handlers) apply(w http.ResponseWriter, r *http.Request, req Request, resp Response) {
	ctx := r.Context()
	identity := req.Identity

	if resp.SignOut {
		if h.sessions != nil {
			if err := h.sessions.Destroy(ctx); err != nil {
				applog.Error(ctx, "failed to destroy session", "error", err)
			}
		}
		identity = nil
	}

	if resp.SignIn != nil {
		if err := h.establishSession(ctx, resp.SignIn); err != nil {
			applog.Error(ctx, "failed to establish session", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		identity = resp.SignIn
	}

	if !resp.Notice.Empty() && h.sessions != nil {
		h.sessions.Put(ctx, sessionNoticeKey, resp.Notice.Message)
		h.sessions.Put(ctx, sessionNoticeToneKey, resp.Notice.Tone)
	}

	if resp.Redirect != "" {
		redirect(w, r, resp.Redirect)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Content == nil {
		if status == http.StatusOK {
			w.WriteHeader(status)
			return
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	page := resp.Content
	if !req.HTMX {
		shell := layout.Shell{Title: resp.Title, Path: req.Path}
		if identity != nil {
			shell.Username = identity.Username
		}
		page = layout.Layout(shell, resp.Content)
	}

	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		applog.Error(ctx, "failed to render page", "path", req.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

func (h *Handlers) establishSession(ctx context.Context, identity *Identity) error {
	if h.sessions == nil {
		return errSessionsUnavailable
	}
	if err := h.sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.sessions.Put(ctx, sessionUserIDKey, int(identity.UserID))
	h.sessions.Put(ctx, sessionUsernameKey, identity.Username)
	return nil
}

func (h *Handlers) identity(r *http.Request) *Identity {
	if h.sessions == nil {
		return nil
	}
	id := h.sessions.GetInt(r.Context(), sessionUserIDKey)
	if id <= 0 {
		return nil
	}
	return &Identity{
		UserID:   uint(id),
		Username: h.sessions.GetString(r.Context(), sessionUsernameKey),
	}
}

// ActiveSession returns true when the current request has an authenticated session.
func (h *Handlers) ActiveSession(r *http.Request) bool {
	return h.identity(r) != nil
}

// RequireAuthentication ensures the user has an active session before accessing the resource.
func (h *Handlers) RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.ActiveSession(r) {
			applog.Debug(r.Context(), "anonymous request to protected route", "path", r.URL.Path)
			redirect(w, r, loginPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logout destroys the current session and sends the user to the login screen.
func (h *Handlers) Logout(ctx context.Context, req Request) Response {
	switch req.Method {
	case http.MethodGet, http.MethodPost:
	default:
		return Response{Status: http.StatusMethodNotAllowed}
	}
	applog.Debug(ctx, "signing out", "authenticated", req.Identity != nil)
	return Response{SignOut: true, Redirect: loginPath}
}

// redirect answers HTMX requests with HX-Redirect so the client performs a
// full navigation instead of swapping the target.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
