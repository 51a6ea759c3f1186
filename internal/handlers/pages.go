package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/middleware"
	"github.com/eventify/eventify-web/internal/session"
	"github.com/eventify/eventify-web/views"
	"github.com/eventify/eventify-web/views/layout"
)

// Pages holds what every handler needs to build a page: the flash cookie and
// the public site URL used for canonical links and ticket QR codes.
type Pages struct {
	sessions *session.Manager
	siteURL  string
}

func NewPages(sessions *session.Manager, siteURL string) *Pages {
	return &Pages{
		sessions: sessions,
		siteURL:  siteURL,
	}
}

// SiteURL is the public base URL of the frontend.
func (p *Pages) SiteURL() string {
	return p.siteURL
}

// Page builds the layout of the current request and pops its queued flashes.
func (p *Pages) Page(c echo.Context, title string) layout.Page {
	meta := layout.NewPageMeta(c, p.siteURL).WithTitle(title)
	return layout.NewPage(meta, c.Request().URL.Path, session.StateOf(c), p.sessions.Flashes(c))
}

// Flash queues a notification for the next rendered page.
func (p *Pages) Flash(c echo.Context, kind session.FlashKind, message string) {
	if message == "" {
		return
	}
	if err := p.sessions.AddFlash(c, session.Flash{Kind: kind, Message: message}); err != nil {
		slog.Error("failed to queue flash", "error", err, "path", c.Request().URL.Path)
	}
}

// Redirect queues a notification and sends the browser to path.
func (p *Pages) Redirect(c echo.Context, path string, kind session.FlashKind, message string) error {
	p.Flash(c, kind, message)
	return seeOther(c, path)
}

// Expired logs the session out when err says the API rejected the credential
// and sends the browser to the login page. The bool reports whether it did;
// callers return the error as the response when it is true.
func (p *Pages) Expired(c echo.Context, err error) (bool, error) {
	if !session.FromEcho(c).LogoutIfUnauthorized(err) {
		return false, nil
	}
	return true, p.Redirect(c, auth.LoginPath, session.FlashWarning, "Your session has expired. Please log in again.")
}

// NotFound renders the not-found page of a section.
func (p *Pages) NotFound(text string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(p.Page(c, text), text))
	}
}

// client returns the API client bound to the request session.
func client(c echo.Context) *api.Client {
	return middleware.APIClient(c)
}

// store returns the session store of the request.
func store(c echo.Context) *session.Store {
	return session.FromEcho(c)
}
