package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
)

func TestHandleProfileUpdate_RefreshesIdentity(t *testing.T) {
	user := fakeIdentity(auth.RoleUser)
	var update api.ProfileUpdate

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /user/putprofile", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&update)
		renamed := user
		renamed.Name = update.Name
		WriteAPIJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "user": renamed})
	})
	env := NewTestEnv(mux)
	t.Cleanup(env.Close)

	h := NewUserHandler(env.Pages)
	var after auth.State
	env.Echo.POST("/user/profile", func(c echo.Context) error {
		err := h.HandleProfileUpdate(c)
		after = store(c).State()
		return err
	})
	b := env.LoginAs(user)

	rec := b.Post("/user/profile", url.Values{"name": {"Renamed Person"}, "password": {"new-secret"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.ProfilePath(auth.RoleUser), rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, api.ProfileUpdate{Name: "Renamed Person", Password: "new-secret"}, update)
	require.NotNil(t, after.Identity)
	assert.Equal(t, "Renamed Person", after.Identity.Name)
	assert.Equal(t, user.Email, after.Identity.Email)
	assert.True(t, after.IsAuthenticated)
	assert.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Message: "Profile updated"}}, b.Flashes())
}

func TestHandleProfileUpdate_RequiresName(t *testing.T) {
	env := NewTestEnv(nil)
	t.Cleanup(env.Close)
	env.Echo.POST("/user/profile", NewUserHandler(env.Pages).HandleProfileUpdate)
	b := env.LoginAs(fakeIdentity(auth.RoleAdmin))

	rec := b.Post("/user/profile", url.Values{"name": {"  "}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []session.Flash{{Kind: session.FlashError, Message: "Name is required."}}, b.Flashes())
}

func TestHandleDashboard(t *testing.T) {
	user := fakeIdentity(auth.RoleUser)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/profile", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusOK, map[string]any{"user": user})
	})
	mux.HandleFunc("GET /registration/my-tickets", func(w http.ResponseWriter, r *http.Request) {
		ev := concert()
		WriteAPIJSON(w, http.StatusOK, map[string]any{"registrations": []api.Registration{
			{ID: "r1", Event: &ev, Status: "confirmed", Ticket: &api.TicketSummary{Type: "VIP", Price: 120}},
		}})
	})
	env := NewTestEnv(mux)
	t.Cleanup(env.Close)
	env.Echo.GET("/user/dashboard", NewUserHandler(env.Pages).HandleDashboard)

	rec := env.LoginAs(user).Get("/user/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Summer Concert")
	assert.Contains(t, body, `action="/user/registrations/r1/cancel"`)
	assert.Contains(t, body, `href="/user/my-tickets"`)
}

func TestHandleDashboard_ExpiredSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/profile", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
	})
	mux.HandleFunc("GET /registration/my-tickets", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIJSON(w, http.StatusOK, map[string]any{"registrations": []any{}})
	})
	env := NewTestEnv(mux)
	t.Cleanup(env.Close)
	env.Echo.GET("/user/dashboard", NewUserHandler(env.Pages).HandleDashboard)
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Get("/user/dashboard")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, auth.LoginPath, rec.Header().Get(echo.HeaderLocation))
	_, ok := env.Token(b.SessionID)
	assert.False(t, ok)
}

func TestHandleCancelRegistration_ReturnsToList(t *testing.T) {
	cancelled := ""
	mux := http.NewServeMux()
	mux.HandleFunc("POST /registration/cancel/{id}", func(w http.ResponseWriter, r *http.Request) {
		cancelled = r.PathValue("id")
		WriteAPIJSON(w, http.StatusOK, map[string]string{"message": "cancelled"})
	})
	env := NewTestEnv(mux)
	t.Cleanup(env.Close)
	env.Echo.POST("/user/registrations/:registrationId/cancel", NewUserHandler(env.Pages).HandleCancelRegistration)
	b := env.LoginAs(fakeIdentity(auth.RoleUser))

	rec := b.Post("/user/registrations/r1/cancel", url.Values{returnToField: {"/user"}})

	assert.Equal(t, "r1", cancelled)
	assert.Equal(t, "/user", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []session.Flash{{Kind: session.FlashSuccess, Message: "Ticket cancelled successfully!"}}, b.Flashes())
}
