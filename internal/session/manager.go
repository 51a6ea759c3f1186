package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName  = "eventify_session"
	sessionIDKey = "sid"
)

// Manager owns the browser session cookie. The cookie carries only an opaque
// session id and pending flash messages; the credential token stays server
// side, keyed by that id.
type Manager struct {
	store sessions.Store
}

// NewManager creates a new session manager
func NewManager(secret string, secure bool) *Manager {
	gob.Register(Flash{})

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store: store,
	}
}

// SessionID returns the id of the browser session, issuing a new one when
// the cookie is missing or unreadable.
func (m *Manager) SessionID(c echo.Context) (string, error) {
	// A cookie signed with an old secret decodes with an error but still
	// yields a fresh session, so the error is not fatal here.
	session, _ := m.store.Get(c.Request(), sessionName)

	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

// RenewID replaces the session id of the browser with a fresh one and
// returns it. Queued flashes stay in the cookie.
func (m *Manager) RenewID(c echo.Context) (string, error) {
	session, _ := m.store.Get(c.Request(), sessionName)

	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("failed to renew session: %w", err)
	}
	return id, nil
}

// DestroySession expires the browser session cookie
func (m *Manager) DestroySession(c echo.Context) error {
	session, _ := m.store.Get(c.Request(), sessionName)

	session.Options.MaxAge = -1
	delete(session.Values, sessionIDKey)

	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// AddFlash queues a notification for the next rendered page.
func (m *Manager) AddFlash(c echo.Context, f Flash) error {
	session, _ := m.store.Get(c.Request(), sessionName)
	session.AddFlash(f)
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}
	return nil
}

// Flashes pops every queued notification.
func (m *Manager) Flashes(c echo.Context) []Flash {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return nil
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
