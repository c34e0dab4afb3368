package handlers

import (
	"context"
	"net/http"
)

// Home sends signed-in users to the scanner and everyone else to the login form.
func (h *Handlers) Home(ctx context.Context, req Request) Response {
	if req.Path != "/" {
		return Response{Status: http.StatusNotFound}
	}
	if req.Identity == nil {
		return Response{Redirect: loginPath}
	}
	return Response{Redirect: scanPath}
}
