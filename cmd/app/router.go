package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialboard/internal/config"
	handlers "socialboard/internal/handler"
	"socialboard/internal/middleware"
	"socialboard/internal/service"
)

// NewRouter registers every route. Everything except health, login,
// registration and user sign-up needs a bearer token.
func NewRouter(h *handlers.Handlers, authService service.AuthService, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/tables", h.TablesHandler).Methods(http.MethodGet)

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)
	r.Handle("/login", middleware.Chain(http.HandlerFunc(h.Login), limiter.Middleware())).Methods(http.MethodPost)
	r.Handle("/register", middleware.Chain(http.HandlerFunc(h.Register), limiter.Middleware())).Methods(http.MethodPost)
	r.HandleFunc("/users", h.CreateUser).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.AuthMiddleware(authService)))

	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/user", h.GetCurrentUser).Methods(http.MethodGet)

	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/likes", h.LikePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/likes", h.UnlikePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/comments", h.CreateComment).Methods(http.MethodPost)

	api.HandleFunc("/contents", h.GetContents).Methods(http.MethodGet)
	api.HandleFunc("/contents", h.CreateContent).Methods(http.MethodPost)
	api.HandleFunc("/contents/{id}", h.GetContent).Methods(http.MethodGet)
	api.HandleFunc("/contents/{id}", h.UpdateContent).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/contents/{id}", h.DeleteContent).Methods(http.MethodDelete)

	api.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPut, http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "resource not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	// preflights are answered before route matching
	return middleware.Chain(r,
		middleware.LoggingMiddleware(h.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)
}
