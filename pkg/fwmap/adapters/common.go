package adapters

import (
	"fmt"
	"strings"

	"github.com/toyz/fwmap/pkg/fwmap"
)

// Adapter names accepted by New
const (
	EchoName  = "echo"
	GinName   = "gin"
	FiberName = "fiber"
)

// New returns a default adapter for the named web framework
func New(name string) (fwmap.WebServerInterface, error) {
	switch strings.ToLower(name) {
	case EchoName, "":
		return NewDefaultEchoAdapter(), nil
	case GinName:
		return NewDefaultGinAdapter(), nil
	case FiberName:
		return NewDefaultFiberAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q (expected %s, %s or %s)", name, EchoName, GinName, FiberName)
	}
}

// convertPattern rewrites a fwmap pattern into a host router path.
// Typed parameters lose their type; the dispatcher checks it.
func convertPattern(pattern, wildcard, paramPrefix string) string {
	parsed := fwmap.MustParsePattern(pattern)
	segments := parsed.Segments()
	if len(segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		switch seg.Type {
		case fwmap.StaticSegment:
			b.WriteString(seg.Value)
		case fwmap.ParamSegment, fwmap.TypedParamSegment:
			b.WriteString(paramPrefix + seg.Value)
		case fwmap.WildcardSegment:
			b.WriteString(wildcard)
		}
	}
	return b.String()
}

// chain wraps handler with route middlewares, first middleware outermost
func chain(handler fwmap.HandlerFunc, middlewares []fwmap.MiddlewareFunc) fwmap.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

func errorBody(message any) map[string]any {
	return map[string]any{"error": message}
}
