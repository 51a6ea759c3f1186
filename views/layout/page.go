package layout

import (
	"github.com/eventify/eventify-web/internal/auth"
	"github.com/eventify/eventify-web/internal/session"
)

// Page is the data every rendered page shares with the base layout.
type Page struct {
	Meta     PageMeta
	Path     string
	Nav      []auth.NavLink
	Identity *auth.Identity
	Flashes  []session.Flash
}

// NewPage builds the layout data for a session state.
func NewPage(meta PageMeta, path string, state auth.State, flashes []session.Flash) Page {
	return Page{
		Meta:     meta,
		Path:     path,
		Nav:      auth.NavFor(state),
		Identity: state.Identity,
		Flashes:  flashes,
	}
}

// LoggedIn reports whether the page is rendered for a logged in identity.
func (p Page) LoggedIn() bool {
	return p.Identity != nil
}

// Active reports whether link points at the current page.
func (p Page) Active(link auth.NavLink) bool {
	return link.Path == p.Path
}

// WithFlash returns a copy of p showing one more notification.
func (p Page) WithFlash(kind session.FlashKind, message string) Page {
	p.Flashes = append(append([]session.Flash(nil), p.Flashes...), session.Flash{Kind: kind, Message: message})
	return p
}
