package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/plumecms/plume-be/internal/api/handlers"
	"github.com/plumecms/plume-be/internal/auth"
	"github.com/plumecms/plume-be/internal/services"
	"github.com/plumecms/plume-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userService services.UserServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(methodOverride)

	// CORS for the dashboard widget during development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService)
	authHandler := handlers.NewAuthHandler(userService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)
	statusHandler := handlers.NewStatusHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Profile pages. Viewing is public; editing and updating require a
	// session and are further restricted to the owner by the handler.
	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/", userHandler.Show)

		r.Group(func(r chi.Router) {
			r.Use(auth.SessionMiddleware())
			r.Get("/edit", userHandler.Edit)
			r.Patch("/", userHandler.Update)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware())
		r.Get("/status", statusHandler.Show)
		r.Get("/ws", wsHandler.Serve)
		r.Get("/api/v1/events", eventHandler.GetRecent)
	})

	return r
}

// methodOverride lets HTML forms submit PATCH via a hidden _method field,
// since browsers only send GET and POST.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch r.PostForm.Get("_method") {
				case http.MethodPatch:
					r.Method = http.MethodPatch
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
