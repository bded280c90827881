package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers the console's page routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)

	mux.HandleFunc("GET /dashboard", h.requireSession(h.Dashboard))
	mux.HandleFunc("POST /users", h.requireSession(h.CreateUser))
	mux.HandleFunc("POST /users/{id}", h.requireSession(h.UpdateUser))
	mux.HandleFunc("POST /users/{id}/delete", h.requireSession(h.DeleteUser))
}
