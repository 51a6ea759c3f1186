package routes

import (
	"net/http"
	"slices"
	"strings"

	"github.com/eventify/eventify-web/internal/auth"
)

// Declaration binds a path pattern to a view and its access requirement.
// Inside a subtree the path is relative to the subtree prefix; "" is the
// subtree index.
type Declaration struct {
	Method string
	Path   string
	View   string
	Access auth.Access
}

// Subtree groups declarations under a prefix with its own not-found view.
type Subtree struct {
	Prefix   string
	NotFound string
	Routes   []Declaration
}

// Tree is the full routing table: top-level declarations, role subtrees and
// the global not-found text.
type Tree struct {
	Routes   []Declaration
	Subtrees []Subtree
	NotFound string
}

// Route is a declaration resolved to its full path.
type Route struct {
	Method  string
	Pattern string
	View    string
	Access  auth.Access
	// Prefix is the subtree the route belongs to, "" for top-level routes.
	Prefix string
}

// Match is the result of resolving a request against the tree.
type Match struct {
	Found  bool
	Route  Route
	Params map[string]string
	// NotFound is the fallback text when Found is false.
	NotFound string
}

// All returns every declared route with its full pattern.
func (t Tree) All() []Route {
	var out []Route
	for _, d := range t.Routes {
		out = append(out, Route{Method: method(d), Pattern: d.Path, View: d.View, Access: d.Access})
	}
	for _, st := range t.Subtrees {
		for _, d := range st.Routes {
			out = append(out, Route{
				Method:  method(d),
				Pattern: join(st.Prefix, d.Path),
				View:    d.View,
				Access:  d.Access,
				Prefix:  st.Prefix,
			})
		}
	}
	return out
}

// Paths returns the distinct GET patterns, sorted.
func (t Tree) Paths() []string {
	var paths []string
	for _, r := range t.All() {
		if r.Method == http.MethodGet && !slices.Contains(paths, r.Pattern) {
			paths = append(paths, r.Pattern)
		}
	}
	slices.Sort(paths)
	return paths
}

// Match resolves method and path to the most specific declaration. Static
// segments beat parameters. Without a declaration the deepest enclosing
// subtree supplies the not-found text, then the tree itself.
func (t Tree) Match(method, path string) Match {
	path = normalize(path)
	segs := split(path)

	var (
		best      Route
		bestScore []int
		params    map[string]string
		found     bool
	)
	for _, r := range t.All() {
		if r.Method != method {
			continue
		}
		score, p, ok := matchPattern(split(r.Pattern), segs)
		if !ok {
			continue
		}
		if !found || slices.Compare(score, bestScore) > 0 {
			best, bestScore, params, found = r, score, p, true
		}
	}
	if found {
		return Match{Found: true, Route: best, Params: params}
	}

	return Match{NotFound: t.notFoundFor(path)}
}

func (t Tree) notFoundFor(path string) string {
	text, depth := t.NotFound, -1
	for _, st := range t.Subtrees {
		if path == st.Prefix || strings.HasPrefix(path, st.Prefix+"/") {
			if d := len(split(st.Prefix)); d > depth {
				text, depth = st.NotFound, d
			}
		}
	}
	return text
}

// matchPattern scores a pattern against path segments: 2 for a static
// segment, 1 for a parameter.
func matchPattern(pattern, segs []string) ([]int, map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, nil, false
	}
	score := make([]int, len(pattern))
	var params map[string]string
	for i, p := range pattern {
		switch {
		case strings.HasPrefix(p, ":"):
			if params == nil {
				params = map[string]string{}
			}
			params[p[1:]] = segs[i]
			score[i] = 1
		case p == segs[i]:
			score[i] = 2
		default:
			return nil, nil, false
		}
	}
	return score, params, true
}

func method(d Declaration) string {
	if d.Method == "" {
		return http.MethodGet
	}
	return d.Method
}

func join(prefix, rel string) string {
	if rel == "" {
		return prefix
	}
	return prefix + "/" + strings.TrimPrefix(rel, "/")
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
