package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumecms/plume-be/internal/auth"
)

func TestLoginFormRenders(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/login", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Connexion")
	assert.Contains(t, body, "Mot de passe")
	assert.Contains(t, body, "Se connecter")
}

func TestLoginWithValidCredentials(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "Padmé", "padme@amidala.na", "n4b00-qu33n")

	form := url.Values{}
	form.Set("email", "padme@amidala.na")
	form.Set("password", "n4b00-qu33n")
	rec := app.postForm(t, "/login", form, nil)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/"+user.ID, rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	claims, err := auth.ValidateJWT(session.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginWithWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "Padmé", "padme@amidala.na", "n4b00-qu33n")

	form := url.Values{}
	form.Set("email", "padme@amidala.na")
	form.Set("password", "wrong")
	rec := app.postForm(t, "/login", form, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Identifiants invalides.")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "Padmé", "padme@amidala.na", "n4b00-qu33n")

	rec := app.postForm(t, "/logout", url.Values{}, app.actingAs(t, user))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestRecentEventsEndpointRequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.get(t, "/api/v1/events", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRecentEventsEndpointReturnsJSON(t *testing.T) {
	app := newTestApp(t)
	user := app.createUser(t, "Padmé", "padme@amidala.na", "n4b00-qu33n")
	require.NoError(t, app.events.CreateEvent("auth.login", "info", "Padmé s'est connecté", &user.ID))

	rec := app.get(t, "/api/v1/events", app.actingAs(t, user))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "auth.login")
}
