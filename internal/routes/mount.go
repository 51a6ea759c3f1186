package routes

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/auth"
)

// Resolver maps a view id to its handler.
type Resolver func(view string) (echo.HandlerFunc, bool)

// NotFoundFunc renders the not-found view with the given text.
type NotFoundFunc func(text string) echo.HandlerFunc

// Mount registers every declaration of tree on e with the guard attached,
// plus a not-found handler per subtree and a global one. It fails if a view
// has no handler.
func Mount(e *echo.Echo, tree Tree, resolve Resolver, notFound NotFoundFunc, guard auth.GuardConfig) error {
	add := func(g interface {
		Add(method, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	}, d Declaration, p string) error {
		h, ok := resolve(d.View)
		if !ok {
			return fmt.Errorf("no handler for view %q (%s %s)", d.View, method(d), p)
		}
		r := g.Add(method(d), p, h, auth.RequireAccess(d.Access, guard))
		r.Name = d.View
		return nil
	}

	for _, d := range tree.Routes {
		if err := add(e, d, d.Path); err != nil {
			return err
		}
	}

	for _, st := range tree.Subtrees {
		g := e.Group(st.Prefix)
		for _, d := range st.Routes {
			rel := ""
			if d.Path != "" {
				rel = "/" + strings.TrimPrefix(d.Path, "/")
			}
			if err := add(g, d, rel); err != nil {
				return err
			}
			if rel == "" {
				if err := add(g, d, "/"); err != nil {
					return err
				}
			}
		}
		g.RouteNotFound("/*", notFound(st.NotFound))
	}

	e.RouteNotFound("/*", notFound(tree.NotFound))
	return nil
}
