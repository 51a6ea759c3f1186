// Package views renders the pages of the web frontend. Pages are html/template
// files embedded in the binary and exposed as templ components so that
// handlers render them the same way as any other component.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"

	"github.com/a-h/templ"

	"github.com/eventify/eventify-web/views/helpers"
	"github.com/eventify/eventify-web/views/layout"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"price":     helpers.FormatPrice,
	"amount":    helpers.FormatAmount,
	"date":      helpers.FormatDate,
	"datetime":  helpers.FormatDateTime,
	"inputDate": helpers.FormatInputDate,
	"title":     helpers.Title,
	"cls":       helpers.Classes,
	"badge":     helpers.StatusBadge,
	"flash":     helpers.FlashClasses,
}

var (
	loadOnce sync.Once
	pages    map[string]*template.Template
	loadErr  error
)

// load parses every page together with the base layout and partials.
func load() (map[string]*template.Template, error) {
	loadOnce.Do(func() {
		base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout/*.html")
		if err != nil {
			loadErr = fmt.Errorf("failed to parse layout templates: %w", err)
			return
		}

		files, err := fs.Glob(templateFS, "templates/pages/*.html")
		if err != nil {
			loadErr = fmt.Errorf("failed to list page templates: %w", err)
			return
		}

		pages = make(map[string]*template.Template, len(files))
		for _, f := range files {
			t, err := template.Must(base.Clone()).ParseFS(templateFS, f)
			if err != nil {
				loadErr = fmt.Errorf("failed to parse page template %s: %w", f, err)
				return
			}
			pages[path.Base(f)] = t
		}
	})
	return pages, loadErr
}

// Names lists the parsed page templates.
func Names() ([]string, error) {
	set, err := load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	return names, nil
}

type view struct {
	Page layout.Page
	Data any
}

func render(name string, page layout.Page, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		set, err := load()
		if err != nil {
			return err
		}
		t, ok := set[name]
		if !ok {
			return fmt.Errorf("unknown page template %q", name)
		}
		return t.ExecuteTemplate(w, "base", view{Page: page, Data: data})
	})
}
