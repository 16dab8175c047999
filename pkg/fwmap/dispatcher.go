package fwmap

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// Dispatcher resolves requests against handler mappings in order
type Dispatcher struct {
	mappings []HandlerMapping
}

// NewDispatcher creates a dispatcher over mappings, sorted by Order.
// Mappings with equal order keep their relative position.
func NewDispatcher(mappings ...HandlerMapping) *Dispatcher {
	sorted := append([]HandlerMapping(nil), mappings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order() < sorted[j].Order()
	})
	return &Dispatcher{mappings: sorted}
}

// Mappings returns the handler mappings in dispatch order
func (d *Dispatcher) Mappings() []HandlerMapping {
	return append([]HandlerMapping(nil), d.mappings...)
}

// Resolve returns the first match in mapping order. A method mismatch in one
// mapping does not stop the search. A HEAD request without a HEAD mapping is
// served by the GET mapping of the same path. If nothing matches, the error
// is an *HTTPError with status 405 (path known, method not) or 404.
func (d *Dispatcher) Resolve(method, path string) (*Match, error) {
	allowed := make(map[string]struct{})

	match, err := d.lookup(method, path, allowed)
	if match == nil && err == nil && method == http.MethodHead {
		match, err = d.lookup(http.MethodGet, path, allowed)
	}
	if match != nil || err != nil {
		return match, err
	}

	if len(allowed) > 0 {
		mna := &MethodNotAllowedError{Method: method, Path: path, Allowed: sortedKeys(allowed)}
		return nil, &HTTPError{Code: http.StatusMethodNotAllowed, Message: http.StatusText(http.StatusMethodNotAllowed), Internal: mna}
	}
	return nil, &HTTPError{Code: http.StatusNotFound, Message: http.StatusText(http.StatusNotFound), Internal: ErrNoMatch}
}

// lookup returns the first mapping's match for method, collecting the
// methods of path-only matches into allowed. Both results are nil when no
// mapping matches.
func (d *Dispatcher) lookup(method, path string, allowed map[string]struct{}) (*Match, error) {
	for _, hm := range d.mappings {
		match, err := hm.Lookup(method, path)
		if err == nil {
			return match, nil
		}

		var mna *MethodNotAllowedError
		switch {
		case errors.As(err, &mna):
			for _, m := range mna.Allowed {
				allowed[m] = struct{}{}
			}
		case errors.Is(err, ErrNoMatch):
		default:
			return nil, err
		}
	}
	return nil, nil
}

// Handle resolves the request, stores path parameters on the context and
// invokes the handler
func (d *Dispatcher) Handle(ctx RequestContext) error {
	match, err := d.Resolve(ctx.Method(), ctx.Path())
	if err != nil {
		var mna *MethodNotAllowedError
		if errors.As(err, &mna) {
			ctx.Response().SetHeader("Allow", strings.Join(mna.Allowed, ", "))
		}
		return err
	}

	for name, value := range match.Params {
		ctx.SetParam(name, value)
	}
	return match.Route.Handler(ctx)
}

// DispatchedRoute describes a route as seen by the dispatcher
type DispatchedRoute struct {
	RouteInfo
	Mapping string
	Order   int
	// Overridden is set when a mapping with a lower order holds an
	// equivalent pattern for the same method, or, for a pattern without
	// parameters, when an earlier mapping would serve its path
	Overridden bool
	// OverriddenBy names the handler that takes precedence
	OverriddenBy string
}

// Routes lists every route in dispatch order
func (d *Dispatcher) Routes() []DispatchedRoute {
	var result []DispatchedRoute
	seen := make(map[string]string)

	for i, hm := range d.mappings {
		for _, route := range hm.Routes() {
			key := route.Method + " " + route.Pattern.Key()
			dr := DispatchedRoute{RouteInfo: route, Mapping: hm.Name(), Order: hm.Order()}
			if prior, ok := seen[key]; ok {
				dr.Overridden = true
				dr.OverriddenBy = prior
			} else {
				seen[key] = qualifiedHandler(route)
				if by, ok := d.shadowedBy(d.mappings[:i], route); ok {
					dr.Overridden = true
					dr.OverriddenBy = by
				}
			}
			result = append(result, dr)
		}
	}
	return result
}

// shadowedBy returns the handler an earlier mapping dispatches a static
// route's path to
func (d *Dispatcher) shadowedBy(earlier []HandlerMapping, route RouteInfo) (string, bool) {
	if !route.Pattern.IsStatic() {
		return "", false
	}
	for _, hm := range earlier {
		if match, err := hm.Lookup(route.Method, route.Pattern.String()); err == nil {
			return qualifiedHandler(match.Route), true
		}
	}
	return "", false
}

func qualifiedHandler(route RouteInfo) string {
	return route.QualifiedName + "." + route.HandlerName
}

// Methods returns every HTTP method that has at least one route
func (d *Dispatcher) Methods() []string {
	set := make(map[string]struct{})
	for _, hm := range d.mappings {
		for _, route := range hm.Routes() {
			set[route.Method] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// CatchAllPattern is the host route under which the dispatcher is mounted
const CatchAllPattern = "/{*}"

// Mount registers the dispatcher on a web server as a catch-all route for
// every supported method. Host routers never choose between mappings; the
// dispatcher does.
func (d *Dispatcher) Mount(server WebServerInterface, middlewares ...MiddlewareFunc) {
	for _, method := range SupportedMethods {
		server.RegisterRoute(method, CatchAllPattern, d.Handle, middlewares...)
	}
}
