package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/internal/routes"
	"github.com/eventify/eventify-web/storage"
)

const testToken = "tok-1"

// stubAPI answers the identity endpoints for a single plain user account.
func stubAPI(t *testing.T) *httptest.Server {
	t.Helper()
	user := map[string]any{"_id": "u1", "name": "Uma User", "email": "uma@example.com", "role": "user"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": testToken, "user": user})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	})
	mux.HandleFunc("GET /events/approved", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"events": []any{}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig(apiURL string) *Config {
	config := &Config{
		Environment: "test",
		Port:        "0",
		BaseURL:     "https://eventify.test",
	}
	config.API.BaseURL = apiURL
	config.API.Timeout = 5 * time.Second
	config.Session.Secret = "0123456789abcdef0123456789abcdef"
	config.Tokens.TTL = time.Hour
	config.Tokens.SweepInterval = time.Hour
	return config
}

// setupTestServer serves the full application against an in-memory token
// store and a stub API.
func setupTestServer(t *testing.T) (*httptest.Server, *Service) {
	t.Helper()

	database, _, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	svc := New(storage.Wrap(database), testConfig(stubAPI(t).URL))
	e := echo.New()
	require.NoError(t, svc.RegisterRoutes(e))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, svc
}

// newBrowser keeps cookies between requests and does not follow redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestEveryViewHasHandler(t *testing.T) {
	svc := New(nil, testConfig("http://api.test"))
	table := svc.views()

	for _, r := range routes.Default().All() {
		_, ok := table[r.View]
		assert.True(t, ok, "view %s (%s %s) has no handler", r.View, r.Method, r.Pattern)
	}
}

func TestGuardedFlow(t *testing.T) {
	srv, _ := setupTestServer(t)
	browser := newBrowser(t)

	get := func(path string) *http.Response {
		t.Helper()
		resp, err := browser.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	// Visitors are sent to the login page.
	resp := get("/user/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(echo.HeaderLocation))

	// Public views never consult the session.
	assert.Equal(t, http.StatusOK, get("/events").StatusCode)

	resp, err := browser.PostForm(srv.URL+"/login", url.Values{"email": {"uma@example.com"}, "password": {"secret"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/user/dashboard", resp.Header.Get(echo.HeaderLocation))

	// The persisted token restores the identity on the next request.
	resp = get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(echo.HeaderLocation))

	resp = get("/organizer/myevents")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(echo.HeaderLocation))

	resp, err = browser.PostForm(srv.URL+"/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = get("/user/my-tickets")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(echo.HeaderLocation))
}

func TestNotFoundSections(t *testing.T) {
	srv, _ := setupTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/nope", routes.NotFoundGlobal},
		{"/user/nope", routes.NotFoundUser},
		{"/organizer/nope/deeper", routes.NotFoundOrganizer},
		{"/admin/unknown", routes.NotFoundAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := newBrowser(t).Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
}
