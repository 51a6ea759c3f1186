package layout

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify-web/internal/api"
)

const (
	SiteName           = "Eventify"
	defaultDescription = "Discover, book and manage events"
)

// PageMeta contains the head metadata of a page (title, description, Open Graph)
type PageMeta struct {
	Title        string
	Description  string
	CanonicalURL string

	// Open Graph
	OGType        string // "website" or "event"
	OGTitle       string
	OGDescription string
	OGImageURL    string // MUST be absolute URL
	OGURL         string // MUST be absolute URL
	OGSiteName    string

	SiteURL string
}

// NewPageMeta creates a PageMeta with site-wide defaults.
// Call this first, then chain .WithTitle() or .FromEvent()
func NewPageMeta(c echo.Context, siteURL string) PageMeta {
	canonicalURL := BuildAbsoluteURL(siteURL, c.Request().URL.Path)

	return PageMeta{
		Title:        SiteName,
		Description:  defaultDescription,
		CanonicalURL: canonicalURL,

		OGType:        "website",
		OGTitle:       SiteName,
		OGDescription: defaultDescription,
		OGURL:         canonicalURL,
		OGSiteName:    SiteName,

		SiteURL: siteURL,
	}
}

// WithTitle sets the page title, keeping the site name as suffix
func (pm PageMeta) WithTitle(title string) PageMeta {
	if title == "" {
		return pm
	}
	pm.Title = title + " - " + pm.OGSiteName
	pm.OGTitle = title
	return pm
}

// FromEvent updates PageMeta with event specific information
func (pm PageMeta) FromEvent(ev api.Event) PageMeta {
	pm = pm.WithTitle(ev.Title)
	pm.OGType = "event"

	if ev.Description != "" {
		description := ev.Description
		if r := []rune(description); len(r) > 160 {
			description = string(r[:157]) + "..."
		}
		pm.Description = description
		pm.OGDescription = description
	}

	if ev.Image != "" {
		pm.OGImageURL = BuildAbsoluteURL(pm.SiteURL, ev.Image)
	}
	return pm
}

// BuildAbsoluteURL constructs an absolute URL from a path
func BuildAbsoluteURL(siteURL, path string) string {
	if path == "" {
		return siteURL
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	siteURL = strings.TrimRight(siteURL, "/")

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return siteURL + path
}
