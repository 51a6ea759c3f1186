package session

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/auth"
)

type contextKey struct{}

// WithStore returns a copy of ctx carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store attached to ctx. It panics when there is
// none: every request that reaches a view must pass the session middleware.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		panic("session: no Store in context")
	}
	return s
}

// Attach makes s the store of the request behind c.
func Attach(c echo.Context, s *Store) {
	c.SetRequest(c.Request().WithContext(WithStore(c.Request().Context(), s)))
}

// FromEcho returns the store of the request behind c.
func FromEcho(c echo.Context) *Store {
	return FromContext(c.Request().Context())
}

// StateOf is the auth.StateFunc backed by the request store.
func StateOf(c echo.Context) auth.State {
	return FromEcho(c).State()
}
