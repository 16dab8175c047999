package fwmap

import (
	"context"
	"net/http"
)

// WebServerInterface is implemented by the adapters that host a Dispatcher
type WebServerInterface interface {
	RegisterRoute(method string, pattern string, handler HandlerFunc, middlewares ...MiddlewareFunc)
	Use(middleware MiddlewareFunc)

	Start(addr string) error
	Stop(ctx context.Context) error

	Name() string
}

// RequestContext provides a framework-agnostic view of an HTTP request
type RequestContext interface {
	Context() context.Context

	Method() string
	Path() string
	RealIP() string

	// Path parameters. The dispatcher resolves its own parameters and stores
	// them with SetParam, so adapters must let Param see values set this way.
	Param(key string) string
	SetParam(name, value string)

	QueryParam(key string) string
	Header(key string) string

	Bind(i any) error

	Get(key string) any
	Set(key string, val any)

	Response() ResponseWriter
}

// ResponseWriter writes the response for a RequestContext
type ResponseWriter interface {
	SetHeader(key, value string)
	Status() int

	JSON(code int, i any) error
	String(code int, s string) error
	NoContent(code int) error

	Written() bool
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// HTTP methods accepted by mappings.
var SupportedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

// IsSupportedMethod reports whether method is one of SupportedMethods
func IsSupportedMethod(method string) bool {
	for _, m := range SupportedMethods {
		if m == method {
			return true
		}
	}
	return false
}
