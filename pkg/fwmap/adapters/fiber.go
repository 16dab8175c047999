package adapters

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/toyz/fwmap/pkg/fwmap"
)

const fiberContextKey = "fwmap.request_context"

// FiberAdapter wraps a Fiber app to implement fwmap.WebServerInterface
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(errorBody(fe.Message))
			}
			httpErr := fwmap.AsHTTPError(err)
			return c.Status(httpErr.Code).JSON(errorBody(httpErr.Message))
		},
	})

	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method string, pattern string, handler fwmap.HandlerFunc, middlewares ...fwmap.MiddlewareFunc) {
	path := convertPattern(pattern, "*", ":")
	fa.app.Add(method, path, convertHandlerToFiber(chain(handler, middlewares)))
}

// Use registers a global middleware with the Fiber app
func (fa *FiberAdapter) Use(middleware fwmap.MiddlewareFunc) {
	fa.app.Use(convertMiddlewareToFiber(middleware))
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

func convertHandlerToFiber(handler fwmap.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(fiberRequestContext(c))
	}
}

func convertMiddlewareToFiber(middleware fwmap.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return middleware(func(fwmap.RequestContext) error {
			return c.Next()
		})(fiberRequestContext(c))
	}
}

func fiberRequestContext(c *fiber.Ctx) *FiberRequestContext {
	if rc, ok := c.Locals(fiberContextKey).(*FiberRequestContext); ok {
		return rc
	}
	rc := &FiberRequestContext{ctx: c, params: make(map[string]string)}
	rc.response = &FiberResponseWriter{ctx: c}
	c.Locals(fiberContextKey, rc)
	return rc
}

// FiberRequestContext wraps fiber.Ctx to implement fwmap.RequestContext
type FiberRequestContext struct {
	ctx      *fiber.Ctx
	params   map[string]string
	response *FiberResponseWriter
}

func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

// Path returns the decoded request path, as net/http reports URL.Path
func (frc *FiberRequestContext) Path() string {
	path := frc.ctx.Path()
	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}
	return path
}

func (frc *FiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

// Param returns a parameter set by the dispatcher, falling back to Fiber's own
func (frc *FiberRequestContext) Param(name string) string {
	if v, ok := frc.params[name]; ok {
		return v
	}
	return frc.ctx.Params(name)
}

func (frc *FiberRequestContext) SetParam(name, value string) {
	frc.params[name] = value
}

func (frc *FiberRequestContext) QueryParam(key string) string {
	return frc.ctx.Query(key)
}

func (frc *FiberRequestContext) Header(key string) string {
	return frc.ctx.Get(key)
}

func (frc *FiberRequestContext) Bind(obj any) error {
	return frc.ctx.BodyParser(obj)
}

func (frc *FiberRequestContext) Get(key string) any {
	return frc.ctx.Locals(key)
}

func (frc *FiberRequestContext) Set(key string, val any) {
	frc.ctx.Locals(key, val)
}

func (frc *FiberRequestContext) Response() fwmap.ResponseWriter {
	return frc.response
}

// FiberResponseWriter wraps fiber.Ctx to implement fwmap.ResponseWriter.
// Fiber reports 200 before anything is written, so writes are tracked here.
type FiberResponseWriter struct {
	ctx     *fiber.Ctx
	written bool
}

func (fr *FiberResponseWriter) SetHeader(name, value string) {
	fr.ctx.Set(name, value)
}

func (fr *FiberResponseWriter) Status() int {
	return fr.ctx.Response().StatusCode()
}

func (fr *FiberResponseWriter) JSON(code int, data any) error {
	fr.written = true
	return fr.ctx.Status(code).JSON(data)
}

func (fr *FiberResponseWriter) String(code int, s string) error {
	fr.written = true
	return fr.ctx.Status(code).SendString(s)
}

func (fr *FiberResponseWriter) NoContent(code int) error {
	fr.written = true
	return fr.ctx.SendStatus(code)
}

func (fr *FiberResponseWriter) Written() bool {
	return fr.written
}

var _ fwmap.WebServerInterface = (*FiberAdapter)(nil)
