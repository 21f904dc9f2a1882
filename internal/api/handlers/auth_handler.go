package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/plumecms/plume-be/internal/auth"
	"github.com/plumecms/plume-be/internal/services"
	"github.com/plumecms/plume-be/internal/web"
)

// AuthHandler serves the login form and manages the session cookie.
type AuthHandler struct {
	users  services.UserServiceProvider
	events services.EventServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, events services.EventServiceProvider) *AuthHandler {
	return &AuthHandler{users: users, events: events}
}

type loginPage struct {
	Email string
	Error string
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	web.Render(w, http.StatusOK, "login.html", loginPage{})
}

// Login checks the submitted credentials and opens a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.users.AuthenticateUser(email, password)
	if err != nil {
		log.Warn().Str("email", email).Msg("Failed authentication attempt")
		web.Render(w, http.StatusUnauthorized, "login.html", loginPage{
			Email: email,
			Error: "Identifiants invalides.",
		})
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		http.Error(w, "Une erreur interne est survenue", http.StatusInternalServerError)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	if err := h.events.CreateEvent("auth.login", "info", user.Name+" s'est connecté", &user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record login event")
	}

	http.Redirect(w, r, "/users/"+user.ID, http.StatusFound)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
