package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/session"
)

const (
	// SessionIDKey is the echo context key holding the browser session id.
	SessionIDKey = "session_id"
	// APIClientKey holds the API client bound to the request's session.
	APIClientKey = "api_client"

	rotateKey = "session_rotate"
)

// SlotFunc returns the persisted token slot of a browser session.
type SlotFunc func(sessionID string) session.TokenSlot

// LoadSession builds the session store of the request and restores it before
// any handler or guard runs. Each store gets its own clone of client so that
// the Authorization header of one browser never leaks into another.
func LoadSession(mgr *session.Manager, slots SlotFunc, client *api.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, err := mgr.SessionID(c)
			if err != nil {
				slog.Error("failed to establish browser session", "error", err, "path", c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}

			bound := client.Clone()
			store := session.New(slots(sid), bound)
			store.Restore(c.Request().Context())
			session.Attach(c, store)
			c.Set(SessionIDKey, sid)
			c.Set(rotateKey, func() (string, error) {
				id, err := mgr.RenewID(c)
				if err != nil {
					return "", err
				}
				if err := store.MoveTo(slots(id)); err != nil {
					return "", err
				}
				c.Set(SessionIDKey, id)
				return id, nil
			})
			SetAPIClient(c, bound)

			state := store.State()
			slog.Debug("session loaded",
				"path", c.Request().URL.Path,
				"authenticated", state.IsAuthenticated,
				"role", state.Role().String())

			return next(c)
		}
	}
}

// SetAPIClient binds client to the request behind c.
func SetAPIClient(c echo.Context, client *api.Client) {
	c.Set(APIClientKey, client)
}

// APIClient returns the API client carrying the session credential. It
// panics when LoadSession did not run for the request.
func APIClient(c echo.Context) *api.Client {
	client, ok := c.Get(APIClientKey).(*api.Client)
	if !ok || client == nil {
		panic("middleware: no API client in context")
	}
	return client
}

// RotateSession issues a new browser session id for the request and moves
// its token slot there. Call it when the session changes hands, e.g. on login.
func RotateSession(c echo.Context) (string, error) {
	rotate, ok := c.Get(rotateKey).(func() (string, error))
	if !ok {
		return "", errors.New("middleware: session not loaded")
	}
	return rotate()
}
