package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
)

func fakeIdentity(role auth.Role) auth.Identity {
	return auth.Identity{
		ID:    gofakeit.UUID(),
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  role,
	}
}

func newAuthEnv(t *testing.T, backend http.Handler) *TestEnv {
	t.Helper()
	env := NewTestEnv(backend)
	t.Cleanup(env.Close)

	h := NewAuthHandler(env.Pages)
	env.Echo.GET("/login", h.HandleLogin)
	env.Echo.POST("/login", h.HandleLoginSubmit)
	env.Echo.GET("/register", h.HandleRegister)
	env.Echo.POST("/register", h.HandleRegisterSubmit)
	env.Echo.POST("/logout", h.HandleLogout)
	return env
}

func TestHandleLoginSubmit_Success(t *testing.T) {
	organizer := fakeIdentity(auth.RoleOrganizer)
	var sent map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		WriteAPIJSON(w, http.StatusOK, map[string]any{"token": "tok-1", "user": organizer})
	})
	env := newAuthEnv(t, mux)

	b := env.Browser()
	sid := b.Session()
	rec := b.Post("/login", url.Values{"email": {organizer.Email}, "password": {"secret"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/organizer/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, organizer.Email, sent["email"])
	assert.Equal(t, "secret", sent["password"])

	// The session id is reissued and the token follows it.
	renewed := b.Session()
	assert.NotEqual(t, sid, renewed)
	_, ok := env.Token(sid)
	assert.False(t, ok)
	token, ok := env.Token(renewed)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Message: "Login successful!"}}, b.Flashes())
}

func TestHandleLoginSubmit_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	})
	env := newAuthEnv(t, mux)

	t.Run("api message is shown", func(t *testing.T) {
		b := env.Browser()
		sid := b.Session()
		rec := b.Post("/login", url.Values{"email": {"ann@example.com"}, "password": {"wrong"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
		assert.Contains(t, rec.Body.String(), `value="ann@example.com"`)
		_, ok := env.Token(sid)
		assert.False(t, ok)
	})

	t.Run("missing fields never reach the api", func(t *testing.T) {
		rec := env.Browser().Post("/login", url.Values{"email": {"ann@example.com"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter your email and password.")
	})
}

func TestHandleRegisterSubmit(t *testing.T) {
	var created map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&created)
		if created["email"] == "taken@example.com" {
			WriteAPIJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
			return
		}
		WriteAPIJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	})
	env := newAuthEnv(t, mux)

	b := env.Browser()
	rec := b.Post("/register", url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Ann", created["name"])
	assert.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Message: "Registration successful! Please login."}}, b.Flashes())

	rec = env.Browser().Post("/register", url.Values{"name": {"Bo"}, "email": {"taken@example.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")

	rec = env.Browser().Post("/register", url.Values{"name": {"Bo"}})
	assert.Contains(t, rec.Body.String(), "Please fill in all fields.")
}

func TestHandleLogout(t *testing.T) {
	env := newAuthEnv(t, nil)
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/logout", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get(echo.HeaderLocation))
	_, ok := env.Token(b.SessionID)
	assert.False(t, ok)
	assert.Equal(t, []session.Flash{{Kind: session.FlashInfo, Message: "You have been logged out."}}, b.Flashes())

	// a second logout of the same browser is harmless
	rec = b.Post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLoginPage_ShowsPublicNav(t *testing.T) {
	env := newAuthEnv(t, nil)

	rec := env.Browser().Get("/login")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/register"`)
	assert.NotContains(t, body, "/admin/dashboard")
}
