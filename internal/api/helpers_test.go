package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plumecms/plume-be/internal/auth"
	"github.com/plumecms/plume-be/internal/database"
	"github.com/plumecms/plume-be/internal/models"
	"github.com/plumecms/plume-be/internal/services"
	"github.com/plumecms/plume-be/internal/websocket"
)

// testApp bundles the router and services for feature tests, backed by a
// temporary sqlite database.
type testApp struct {
	router   http.Handler
	db       *sql.DB
	users    *services.UserService
	posts    *services.PostService
	comments *services.CommentService
	events   *services.EventService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	auth.SetSecret("test-secret")

	db, err := database.New(filepath.Join(t.TempDir(), "plume_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	posts := services.NewPostService(db)
	comments := services.NewCommentService(db)
	users := services.NewUserService(db, posts, comments)
	events := services.NewEventService(db, hub)

	return &testApp{
		router:   NewRouter(hub, users, events),
		db:       db,
		users:    users,
		posts:    posts,
		comments: comments,
		events:   events,
	}
}

// createUser inserts a user with the given password in plaintext.
func (a *testApp) createUser(t *testing.T, name, email, password string) models.User {
	t.Helper()
	user, err := a.users.CreateUser(name, email, password)
	require.NoError(t, err)
	return user
}

// actingAs returns a session cookie for the given user, the equivalent of a
// signed-in browser.
func (a *testApp) actingAs(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateJWT(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

// get performs a GET request, optionally with a session cookie.
func (a *testApp) get(t *testing.T, path string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// patch performs a PATCH request with an urlencoded form body.
func (a *testApp) patch(t *testing.T, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// postForm performs a POST request with an urlencoded form body.
func (a *testApp) postForm(t *testing.T, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// userRow reads a user's stored record straight from the database.
func (a *testApp) userRow(t *testing.T, id string) (name, email, passwordHash string) {
	t.Helper()
	err := a.db.QueryRow("SELECT name, email, password_hash FROM users WHERE id = ?", id).
		Scan(&name, &email, &passwordHash)
	require.NoError(t, err)
	return name, email, passwordHash
}

// validParams mirrors the canonical update form used across the update
// tests; overrides add or replace fields.
func validParams(overrides map[string]string) url.Values {
	form := url.Values{}
	form.Set("name", "Padmé")
	form.Set("email", "padme@amidala.na")
	for k, v := range overrides {
		form.Set(k, v)
	}
	return form
}
