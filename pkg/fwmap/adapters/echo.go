package adapters

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/toyz/fwmap/pkg/fwmap"
)

const echoContextKey = "fwmap.request_context"

// EchoAdapter implements fwmap.WebServerInterface for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	e.HTTPErrorHandler = echoErrorHandler
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with a default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return NewEchoAdapter(e)
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method string, pattern string, handler fwmap.HandlerFunc, middlewares ...fwmap.MiddlewareFunc) {
	path := convertPattern(pattern, "*", ":")
	ea.engine.Add(method, path, ea.convertHandler(chain(handler, middlewares)))
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware fwmap.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	return ea.engine.Start(addr)
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

func (ea *EchoAdapter) convertHandler(handler fwmap.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handler(echoRequestContext(c))
	}
}

func (ea *EchoAdapter) convertMiddleware(middleware fwmap.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fwNext := func(fwmap.RequestContext) error {
				return next(c)
			}
			return middleware(fwNext)(echoRequestContext(c))
		}
	}
}

// echoRequestContext returns the request context stored on c, creating it
// on first use so middleware and handlers share parameters
func echoRequestContext(c echo.Context) *EchoRequestContext {
	if rc, ok := c.Get(echoContextKey).(*EchoRequestContext); ok {
		return rc
	}
	rc := &EchoRequestContext{context: c, params: make(map[string]string)}
	c.Set(echoContextKey, rc)
	return rc
}

func echoErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, errorBody(he.Message))
		return
	}
	httpErr := fwmap.AsHTTPError(err)
	_ = c.JSON(httpErr.Code, errorBody(httpErr.Message))
}

// EchoRequestContext implements fwmap.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
	params  map[string]string
}

func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

func (erc *EchoRequestContext) RealIP() string {
	return erc.context.RealIP()
}

// Param returns a parameter set by the dispatcher, falling back to Echo's own
func (erc *EchoRequestContext) Param(key string) string {
	if v, ok := erc.params[key]; ok {
		return v
	}
	return erc.context.Param(key)
}

func (erc *EchoRequestContext) SetParam(name, value string) {
	erc.params[name] = value
}

func (erc *EchoRequestContext) QueryParam(key string) string {
	return erc.context.QueryParam(key)
}

func (erc *EchoRequestContext) Header(key string) string {
	return erc.context.Request().Header.Get(key)
}

func (erc *EchoRequestContext) Bind(i any) error {
	return erc.context.Bind(i)
}

func (erc *EchoRequestContext) Get(key string) any {
	return erc.context.Get(key)
}

func (erc *EchoRequestContext) Set(key string, val any) {
	erc.context.Set(key, val)
}

func (erc *EchoRequestContext) Response() fwmap.ResponseWriter {
	return &EchoResponseWriter{context: erc.context}
}

// EchoResponseWriter implements fwmap.ResponseWriter for Echo
type EchoResponseWriter struct {
	context echo.Context
}

func (erw *EchoResponseWriter) SetHeader(key, value string) {
	erw.context.Response().Header().Set(key, value)
}

func (erw *EchoResponseWriter) Status() int {
	return erw.context.Response().Status
}

func (erw *EchoResponseWriter) JSON(code int, i any) error {
	return erw.context.JSON(code, i)
}

func (erw *EchoResponseWriter) String(code int, s string) error {
	return erw.context.String(code, s)
}

func (erw *EchoResponseWriter) NoContent(code int) error {
	return erw.context.NoContent(code)
}

func (erw *EchoResponseWriter) Written() bool {
	return erw.context.Response().Committed
}

var _ fwmap.WebServerInterface = (*EchoAdapter)(nil)
