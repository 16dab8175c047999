package fwmap

import (
	"fmt"
	"sort"
	"sync"
)

// Orders of the built-in handler mappings. Lower orders are consulted first.
const (
	RequestMappingOrder   = 0
	FrameworkMappingOrder = 10
)

// Names of the built-in handler mappings
const (
	RequestMappingName   = "request_mapping"
	FrameworkMappingName = "framework_mapping"
)

// RouteInfo describes a mapping registered in a HandlerMapping
type RouteInfo struct {
	Method        string
	Pattern       Pattern
	HandlerName   string
	ComponentName string
	QualifiedName string
	Stereotype    Stereotype
	Handler       HandlerFunc
}

// Match is the result of a successful lookup
type Match struct {
	Route   RouteInfo
	Params  map[string]string
	Mapping string
}

// HandlerMapping maps requests to handlers
type HandlerMapping interface {
	Name() string
	Order() int

	// Lookup returns the best match for the request. It returns ErrNoMatch
	// when no pattern matches the path, and a *MethodNotAllowedError when
	// patterns match the path for other methods only.
	Lookup(method, path string) (*Match, error)

	Routes() []RouteInfo
}

// MappingTable is a HandlerMapping backed by a list of routes
type MappingTable struct {
	name  string
	order int

	mu     sync.RWMutex
	routes []RouteInfo
}

// NewMappingTable creates an empty table
func NewMappingTable(name string, order int) *MappingTable {
	return &MappingTable{name: name, order: order}
}

// NewRequestMappingTable creates the table for application mappings
func NewRequestMappingTable() *MappingTable {
	return NewMappingTable(RequestMappingName, RequestMappingOrder)
}

// NewFrameworkMappingTable creates the table for framework default mappings
func NewFrameworkMappingTable() *MappingTable {
	return NewMappingTable(FrameworkMappingName, FrameworkMappingOrder)
}

func (t *MappingTable) Name() string { return t.name }
func (t *MappingTable) Order() int   { return t.order }

// Register adds a route. A route equivalent to an existing one for the same
// method is rejected with an *AmbiguousMappingError.
func (t *MappingTable) Register(route RouteInfo) error {
	if route.Handler == nil {
		return fmt.Errorf("%w: %s %s has no handler", ErrInvalidMapping, route.Method, route.Pattern.Raw())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.routes {
		if existing.Method == route.Method && existing.Pattern.Equivalent(route.Pattern) {
			return &AmbiguousMappingError{
				Table:    t.name,
				Method:   route.Method,
				Pattern:  route.Pattern.String(),
				Existing: existing.QualifiedName + "." + existing.HandlerName,
				Handler:  route.QualifiedName + "." + route.HandlerName,
			}
		}
	}
	t.routes = append(t.routes, route)
	return nil
}

// Lookup implements HandlerMapping
func (t *MappingTable) Lookup(method, path string) (*Match, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var best *Match
	allowed := make(map[string]struct{})

	for _, route := range t.routes {
		params, ok := route.Pattern.Match(path)
		if !ok {
			continue
		}
		if route.Method != method {
			allowed[route.Method] = struct{}{}
			continue
		}
		if best == nil || route.Pattern.MoreSpecific(best.Route.Pattern) {
			best = &Match{Route: route, Params: params, Mapping: t.name}
		}
	}

	if best != nil {
		return best, nil
	}
	if len(allowed) > 0 {
		return nil, &MethodNotAllowedError{Method: method, Path: path, Allowed: sortedKeys(allowed)}
	}
	return nil, ErrNoMatch
}

// Routes returns a copy of the registered routes
func (t *MappingTable) Routes() []RouteInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]RouteInfo(nil), t.routes...)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
