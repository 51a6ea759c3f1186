package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StateFunc reads the session state for the current request.
type StateFunc func(c echo.Context) State

// GuardConfig wires the guard to the session layer and the loading view.
type GuardConfig struct {
	// State returns the session state of the request. Required.
	State StateFunc
	// Pending renders the loading indicator. Defaults to a plain 200 text body.
	Pending echo.HandlerFunc
}

// RequireAccess wraps a view with the authorization decision for access.
// Public access never consults the session.
func RequireAccess(access Access, cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.State == nil {
		panic("auth: GuardConfig.State is required")
	}
	pending := cfg.Pending
	if pending == nil {
		pending = func(c echo.Context) error {
			return c.String(http.StatusOK, "Loading authentication...")
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if access.IsPublic() {
			return next
		}
		return func(c echo.Context) error {
			decision := Decide(cfg.State(c), access)

			switch decision.Outcome {
			case Pending:
				slog.Debug("guard pending", "path", c.Request().URL.Path)
				return pending(c)
			case DeniedUnauthenticated, DeniedRole:
				slog.Debug("guard denied",
					"path", c.Request().URL.Path,
					"outcome", decision.Outcome.String(),
					"redirect", decision.Redirect,
					"allowed", access.String())
				return c.Redirect(http.StatusFound, decision.Redirect)
			default:
				return next(c)
			}
		}
	}
}
