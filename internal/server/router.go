package server

import (
	"context"
	"net/http"

	"alerscan/internal/handlers"
	applog "alerscan/internal/log"
)

func newRouter(h *handlers.Handlers) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", h.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.Handle("/login", h.Serve(h.Login))
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.Handle("/register", h.Serve(h.Register))
	applog.Debug(context.Background(), "route registered", "path", "/register")
	mux.Handle("/logout", h.Serve(h.Logout))
	applog.Debug(context.Background(), "route registered", "path", "/logout")
	mux.Handle("/escanear", h.RequireAuthentication(h.Serve(h.Scan)))
	applog.Debug(context.Background(), "route registered", "path", "/escanear", "protected", true)
	mux.Handle("/registrar", h.RequireAuthentication(h.Serve(h.RegisterProduct)))
	applog.Debug(context.Background(), "route registered", "path", "/registrar", "protected", true)
	mux.Handle("/", h.Serve(h.Home))
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
