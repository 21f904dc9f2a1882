package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/plumecms/plume-be/internal/auth"
	"github.com/plumecms/plume-be/internal/models"
	"github.com/plumecms/plume-be/internal/policy"
	"github.com/plumecms/plume-be/internal/services"
	"github.com/plumecms/plume-be/internal/web"
)

// UserHandler serves the profile pages: view, edit form, and update.
type UserHandler struct {
	users  services.UserServiceProvider
	events services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, events services.EventServiceProvider) *UserHandler {
	return &UserHandler{users: users, events: events}
}

// profilePage is the data for profile.html.
type profilePage struct {
	Profile services.ProfileView
	CanEdit bool
}

// editPage is the data for edit.html.
type editPage struct {
	User   models.User
	Form   services.ProfileUpdateInput
	Errors services.ValidationErrors
}

// Show renders a user's public profile page.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	principal := principalID(r)

	if !policy.CanViewProfile(principal, id) {
		http.Error(w, "Interdit", http.StatusForbidden)
		return
	}

	profile, err := h.users.GetProfile(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to load profile")
		http.Error(w, "Une erreur interne est survenue", http.StatusInternalServerError)
		return
	}

	web.Render(w, http.StatusOK, "profile.html", profilePage{
		Profile: profile,
		CanEdit: policy.CanEditProfile(principal, id),
	})
}

// Edit renders the profile edit form. Only the owner may open it.
func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || !policy.CanEditProfile(claims.UserID, id) {
		http.Error(w, "Interdit", http.StatusForbidden)
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to load user for edit")
		http.Error(w, "Une erreur interne est survenue", http.StatusInternalServerError)
		return
	}

	web.Render(w, http.StatusOK, "edit.html", editPage{
		User: user,
		Form: services.ProfileUpdateInput{Name: user.Name, Email: user.Email},
	})
}

// Update applies a profile update. The ownership check runs before anything
// is read or written; rejected requests leave the record untouched.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || !policy.CanEditProfile(claims.UserID, id) {
		http.Error(w, "Interdit", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	input := services.ProfileUpdateInput{
		Name:                 r.PostFormValue("name"),
		Email:                r.PostFormValue("email"),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("password_confirmation"),
	}

	updated, err := h.users.UpdateProfile(id, input)
	if err != nil {
		h.renderUpdateError(w, r, id, input, err)
		return
	}

	if err := h.events.CreateEvent("user.profile.update", "info", updated.Name+" a mis à jour son profil", &updated.ID); err != nil {
		log.Error().Err(err).Str("user_id", updated.ID).Msg("Failed to record profile update event")
	}

	http.Redirect(w, r, "/users/"+updated.ID, http.StatusFound)
}

// renderUpdateError maps an update failure to the right response: field
// errors re-render the form, unknown users 404, anything else a generic 500.
func (h *UserHandler) renderUpdateError(w http.ResponseWriter, r *http.Request, id string, input services.ProfileUpdateInput, err error) {
	if errs, ok := services.AsValidationErrors(err); ok {
		h.renderEditForm(w, id, input, errs)
		return
	}
	if errors.Is(err, services.ErrEmailTaken) {
		h.renderEditForm(w, id, input, services.ValidationErrors{
			"email": "Cette adresse e-mail est déjà utilisée.",
		})
		return
	}
	if errors.Is(err, services.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}
	log.Error().Err(err).Str("user_id", id).Msg("Failed to update profile")
	http.Error(w, "Une erreur interne est survenue", http.StatusInternalServerError)
}

func (h *UserHandler) renderEditForm(w http.ResponseWriter, id string, input services.ProfileUpdateInput, errs services.ValidationErrors) {
	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to reload user for form errors")
		http.Error(w, "Une erreur interne est survenue", http.StatusInternalServerError)
		return
	}
	web.Render(w, http.StatusUnprocessableEntity, "edit.html", editPage{
		User:   user,
		Form:   input,
		Errors: errs,
	})
}

// principalID returns the signed-in user's id, or "" when the request
// carries no valid session. The profile view is public, so this is a best
// effort lookup rather than a guard.
func principalID(r *http.Request) string {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	claims, err := auth.ValidateJWT(cookie.Value)
	if err != nil {
		return ""
	}
	return claims.UserID
}
