package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/middleware"
	"github.com/eventify/eventify-web/internal/session"
)

// TestSessionSecret signs the cookies of test environments.
const TestSessionSecret = "0123456789abcdef0123456789abcdef"

// NewFormContext builds a bare echo context for a form post, with no
// session middleware in front of it.
func NewFormContext(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// TestEnv is an echo instance running the session middleware against a stub
// API server. The stub answers /auth/me itself for tokens issued by LoginAs
// and hands every other request to the handler given to NewTestEnv.
type TestEnv struct {
	Echo     *echo.Echo
	Sessions *session.Manager
	Pages    *Pages
	API      *httptest.Server

	backend http.Handler

	mu         sync.Mutex
	slots      map[string]*session.MemorySlot
	identities map[string]auth.Identity
}

// NewTestEnv starts the stub API. Call Close when done.
func NewTestEnv(backend http.Handler) *TestEnv {
	env := &TestEnv{
		Echo:       echo.New(),
		Sessions:   session.NewManager(TestSessionSecret, false),
		backend:    backend,
		slots:      map[string]*session.MemorySlot{},
		identities: map[string]auth.Identity{},
	}
	env.API = httptest.NewServer(http.HandlerFunc(env.serveAPI))
	env.Pages = NewPages(env.Sessions, "https://eventify.test")
	env.Echo.Use(middleware.LoadSession(env.Sessions, env.slot, api.New(env.API.URL)))
	return env
}

func (env *TestEnv) Close() {
	env.API.Close()
}

func (env *TestEnv) slot(sid string) session.TokenSlot {
	env.mu.Lock()
	defer env.mu.Unlock()
	if _, ok := env.slots[sid]; !ok {
		env.slots[sid] = session.NewMemorySlot("")
	}
	return env.slots[sid]
}

// Token returns what the slot of the browser session holds.
func (env *TestEnv) Token(sid string) (string, bool) {
	return env.slot(sid).Token()
}

func (env *TestEnv) serveAPI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/auth/me" {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		env.mu.Lock()
		identity, ok := env.identities[token]
		env.mu.Unlock()
		if !ok {
			WriteAPIJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		WriteAPIJSON(w, http.StatusOK, map[string]any{"user": identity})
		return
	}
	if env.backend == nil {
		http.NotFound(w, r)
		return
	}
	env.backend.ServeHTTP(w, r)
}

// Browser returns a cookie-keeping client with no session yet.
func (env *TestEnv) Browser() *TestBrowser {
	return &TestBrowser{env: env, cookies: map[string]*http.Cookie{}}
}

// LoginAs returns a browser whose session is logged in as identity.
func (env *TestEnv) LoginAs(identity auth.Identity) *TestBrowser {
	b := env.Browser()
	sid := b.Session()

	token := "token-" + sid
	env.mu.Lock()
	env.identities[token] = identity
	env.mu.Unlock()
	_ = env.slot(sid).SetToken(token)
	return b
}

// Revoke makes the API reject the token of b from now on.
func (env *TestEnv) Revoke(b *TestBrowser) {
	env.mu.Lock()
	defer env.mu.Unlock()
	delete(env.identities, "token-"+b.SessionID)
}

// TestBrowser replays the cookies it receives on later requests.
type TestBrowser struct {
	SessionID string

	env     *TestEnv
	cookies map[string]*http.Cookie
}

// Session returns the browser session id, issuing one when the browser has
// no cookie yet.
func (b *TestBrowser) Session() string {
	c, rec := b.context(http.MethodGet, "/")
	sid, err := b.env.Sessions.SessionID(c)
	if err != nil {
		panic("failed to issue test session: " + err.Error())
	}
	b.keep(rec)
	b.SessionID = sid
	return sid
}

func (b *TestBrowser) request(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	return req
}

func (b *TestBrowser) context(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return b.env.Echo.NewContext(b.request(method, target, nil), rec), rec
}

func (b *TestBrowser) keep(rec *httptest.ResponseRecorder) {
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
}

// Get sends a GET request through the test echo instance.
func (b *TestBrowser) Get(target string) *httptest.ResponseRecorder {
	return b.Do(http.MethodGet, target, nil)
}

// Post sends an urlencoded form.
func (b *TestBrowser) Post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.Do(http.MethodPost, target, form)
}

func (b *TestBrowser) Do(method, target string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	b.env.Echo.ServeHTTP(rec, b.request(method, target, form))
	b.keep(rec)
	return rec
}

// Flashes pops the notifications queued for the next page.
func (b *TestBrowser) Flashes() []session.Flash {
	c, rec := b.context(http.MethodGet, "/")
	flashes := b.env.Sessions.Flashes(c)
	b.keep(rec)
	return flashes
}

// WriteAPIJSON writes v as a JSON API response.
func WriteAPIJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
