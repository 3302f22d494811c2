// Package facade maps abstract (verb, path) requests onto exactly one
// gateway call so callers never depend on the active storage backend.
package facade

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"irportal/internal/domain"
	"irportal/internal/domain/services"
)

// Request is one abstract call into the portal
type Request struct {
	Verb    string
	Path    string
	Query   url.Values
	Payload any // json.RawMessage, []byte, or an already-typed insert/patch value
}

// HandlerFunc performs the gateway call for a matched route
type HandlerFunc func(ctx context.Context, id string, req Request) (any, error)

// Route binds a verb and path pattern to a gateway operation. A pattern
// segment is either a literal or the single wildcard "{id}".
type Route struct {
	Verb    string
	Pattern string
	Handle  HandlerFunc

	segments  []string
	wildcards int
}

const wildcard = "{id}"

// Facade is the fixed routing table
type Facade struct {
	gw     *services.Gateway
	routes []Route
	logger *slog.Logger
}

// New builds the routing table over gw
func New(gw *services.Gateway, logger *slog.Logger) *Facade {
	f := &Facade{gw: gw, logger: logger}
	for _, r := range f.table() {
		f.add(r)
	}
	return f
}

func (f *Facade) add(r Route) {
	r.segments = splitPath(r.Pattern)
	for _, s := range r.segments {
		if s == wildcard {
			r.wildcards++
		}
	}
	f.routes = append(f.routes, r)
}

// Routes returns the verb and pattern of every registered route
func (f *Facade) Routes() [][2]string {
	out := make([][2]string, 0, len(f.routes))
	for _, r := range f.routes {
		out = append(out, [2]string{r.Verb, r.Pattern})
	}
	return out
}

// Dispatch routes req to its gateway operation. Unknown combinations
// return a *domain.UnsupportedOperationError.
func (f *Facade) Dispatch(ctx context.Context, req Request) (any, error) {
	verb := strings.ToUpper(req.Verb)
	route, id, ok := f.match(verb, req.Path)
	if !ok {
		return nil, &domain.UnsupportedOperationError{Verb: verb, Path: req.Path}
	}
	if req.Query == nil {
		req.Query = url.Values{}
	}

	f.logger.Debug("dispatch", "verb", verb, "pattern", route.Pattern, "id", id)
	return route.Handle(ctx, id, req)
}

// match prefers the route with the fewest wildcards so literal paths
// such as /documents/search win over /documents/{id}
func (f *Facade) match(verb, path string) (*Route, string, bool) {
	segments := splitPath(path)

	var best *Route
	var bestID string
	for i := range f.routes {
		r := &f.routes[i]
		if r.Verb != verb || len(r.segments) != len(segments) {
			continue
		}

		id, ok := matchSegments(r.segments, segments)
		if !ok {
			continue
		}
		if best == nil || r.wildcards < best.wildcards {
			best, bestID = r, id
		}
	}
	return best, bestID, best != nil
}

func matchSegments(pattern, segments []string) (string, bool) {
	var id string
	for i, p := range pattern {
		if p == wildcard {
			if segments[i] == "" {
				return "", false
			}
			id = segments[i]
			continue
		}
		if p != segments[i] {
			return "", false
		}
	}
	return id, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
