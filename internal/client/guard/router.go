package guard

import (
	"strings"
)

// maxRedirects bounds redirect chains. The built-in tree needs at most two.
const maxRedirects = 5

// Result is where a navigation ended up. Title belongs to the final route.
// Redirected is set when the requested path was not entered as asked.
type Result struct {
	Path       string
	Title      string
	Redirected bool
}

// Router resolves paths against a route tree and applies the guard to every
// protected level on the way down, parent before child.
type Router struct {
	guard  *Guard
	routes []Route
}

func NewRouter(g *Guard, routes []Route) *Router {
	return &Router{guard: g, routes: routes}
}

// Navigate follows path and any redirects it triggers. Unknown paths go to
// HomePath.
func (r *Router) Navigate(path string) Result {
	target := cleanPath(path)
	redirected := false

	for i := 0; i <= maxRedirects; i++ {
		chain, ok := match(r.routes, segments(target))
		if !ok {
			if target == HomePath {
				return Result{Path: HomePath, Redirected: true}
			}
			target, redirected = HomePath, true
			continue
		}

		next := ""
		for _, rt := range chain {
			if !rt.Protected() {
				continue
			}
			if d := r.guard.CanEnter(rt.Roles); !d.Allowed {
				next = d.Redirect
				break
			}
		}
		if next == "" {
			return Result{Path: target, Title: chain[len(chain)-1].Title, Redirected: redirected}
		}
		target, redirected = next, true
	}

	return Result{Path: HomePath, Redirected: true}
}

// Lookup returns the route chain for path without consulting the guard.
func (r *Router) Lookup(path string) ([]Route, bool) {
	return match(r.routes, segments(cleanPath(path)))
}

// match walks segs down the tree. A route with children is only a
// destination through its "" child.
func match(routes []Route, segs []string) ([]Route, bool) {
	head := ""
	if len(segs) > 0 {
		head = segs[0]
	}
	for _, rt := range routes {
		if rt.Path != head {
			continue
		}
		rest := segs
		if len(segs) > 0 {
			rest = segs[1:]
		}
		if len(rt.Children) == 0 {
			if len(rest) == 0 {
				return []Route{rt}, true
			}
			continue
		}
		if sub, ok := match(rt.Children, rest); ok {
			return append([]Route{rt}, sub...), true
		}
	}
	return nil, false
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return "/" + strings.Join(segments(p), "/")
}

func segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
