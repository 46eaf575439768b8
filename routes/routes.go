package routes

import (
	"net/http"

	"go.uber.org/zap"

	"shippingerp/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handlers struct {
	Auth     *handlers.Auth
	User     *handlers.UserHandler
	Category *handlers.CategoryHandler
	Post     *handlers.PostHandler
	Reply    *handlers.ReplyHandler
	Progress *handlers.ProgressHandler
	RoRo     *handlers.RoRoHandler
}

// NewRouter registers every API route and wraps the mux with CORS and panic recovery.
func NewRouter(h Handlers, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	auth := h.Auth

	// User routes
	mux.HandleFunc("POST /signup", h.User.Signup)
	mux.HandleFunc("POST /login", h.User.Login)
	mux.HandleFunc("GET /me", auth.UserOnly(h.User.Me))
	mux.HandleFunc("GET /protected", auth.StaffOnly(h.User.Me))
	mux.HandleFunc("GET /admin-only", auth.AdminOnly(h.User.Me))

	// Category routes
	mux.HandleFunc("GET /api/category/{kind}", auth.UserOnly(h.Category.List))
	mux.HandleFunc("POST /api/category/{kind}", auth.AdminOnly(h.Category.Create))
	mux.HandleFunc("DELETE /api/category/{kind}/{id}", auth.AdminOnly(h.Category.Delete))

	// Post routes
	mux.HandleFunc("GET /api/posts", auth.UserOnly(h.Post.List))
	mux.HandleFunc("GET /api/posts/me", auth.UserOnly(h.Post.Mine))
	mux.HandleFunc("GET /api/posts/{id}", auth.UserOnly(h.Post.Get))
	mux.HandleFunc("POST /api/posts", auth.UserOnly(h.Post.Create))
	mux.HandleFunc("PUT /api/posts/{id}", auth.UserOnly(h.Post.Update))
	mux.HandleFunc("DELETE /api/posts/{id}", auth.UserOnly(h.Post.Delete))
	mux.HandleFunc("GET /api/posts/{id}/files/{index}", auth.UserOnly(h.Post.Download))

	// Reply routes
	mux.HandleFunc("GET /api/replies/{post_id}", auth.UserOnly(h.Reply.List))
	mux.HandleFunc("POST /api/replies/{post_id}", auth.UserOnly(h.Reply.Create))
	mux.HandleFunc("PUT /api/replies/{id}", auth.UserOnly(h.Reply.Update))
	mux.HandleFunc("DELETE /api/replies/{id}", auth.UserOnly(h.Reply.Delete))

	// Progress routes
	mux.HandleFunc("GET /api/progress/{post_id}", auth.UserOnly(h.Progress.Get))
	mux.HandleFunc("POST /api/progress/{post_id}", auth.StaffOnly(h.Progress.Create))
	mux.HandleFunc("PUT /api/progress/{id}", auth.StaffOnly(h.Progress.Update))
	mux.HandleFunc("DELETE /api/progress/{id}", auth.AdminOnly(h.Progress.Delete))

	// RoRo routes
	mux.HandleFunc("GET /api/progress/roro/{progress_id}", auth.StaffOnly(h.RoRo.List))
	mux.HandleFunc("POST /api/progress/roro/{progress_id}", auth.StaffOnly(h.RoRo.Create))
	mux.HandleFunc("PATCH /api/progress/roro/{id}", auth.StaffOnly(h.RoRo.Update))
	mux.HandleFunc("DELETE /api/progress/roro/{id}", auth.StaffOnly(h.RoRo.Delete))
	mux.HandleFunc("GET /api/progress/roro/item/{id}", auth.StaffOnly(h.RoRo.Get))
	mux.HandleFunc("GET /api/progress/roro/item/{id}/pdf", auth.StaffOnly(h.RoRo.Statement))

	return withCORS(handlers.RecoverWrapper(log, mux))
}
