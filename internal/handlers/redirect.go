package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// returnToField is the form field carrying the page to go back to after an
// action posted from a list.
const returnToField = "return_to"

var disallowedReturnTo = map[string]struct{}{
	"/login":    {},
	"/register": {},
	"/logout":   {},
}

func sanitizeReturnTo(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	if strings.ContainsAny(path, "\r\n") {
		return "", false
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return "", false
	}

	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "/\\") {
		return "", false
	}

	base := path
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		base = path[:idx]
	}

	if _, blocked := disallowedReturnTo[base]; blocked {
		return "", false
	}

	return path, true
}

// returnTo picks the page an action should come back to: the posted
// return_to field when it is a local path, fallback otherwise.
func returnTo(c echo.Context, fallback string) string {
	if sanitized, ok := sanitizeReturnTo(c.FormValue(returnToField)); ok {
		return sanitized
	}
	return fallback
}

// seeOther redirects after a form post.
func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}
