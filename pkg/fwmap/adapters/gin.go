package adapters

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/toyz/fwmap/pkg/fwmap"
)

const ginContextKey = "fwmap.request_context"

// GinAdapter implements fwmap.WebServerInterface for Gin
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a new Gin adapter with a release-mode engine and recovery
func NewDefaultGinAdapter() *GinAdapter {
	gin.SetMode(gin.ReleaseMode)
	g := gin.New()
	g.Use(gin.Recovery())
	return NewGinAdapter(g)
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method string, pattern string, handler fwmap.HandlerFunc, middlewares ...fwmap.MiddlewareFunc) {
	path := convertPattern(pattern, "*path", ":")
	ga.engine.Handle(method, path, ga.convertHandler(chain(handler, middlewares)))
}

// Use registers a global middleware with the Gin engine
func (ga *GinAdapter) Use(middleware fwmap.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// Start serves the engine on addr until Stop is called
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	server := ga.server
	ga.mu.Unlock()

	return server.ListenAndServe()
}

// Stop gracefully shuts down the server started by Start
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	server := ga.server
	ga.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

func (ga *GinAdapter) convertHandler(handler fwmap.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(ginRequestContext(c)); err != nil {
			writeGinError(c, err)
		}
	}
}

func (ga *GinAdapter) convertMiddleware(middleware fwmap.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := func(fwmap.RequestContext) error {
			c.Next()
			return nil
		}
		if err := middleware(next)(ginRequestContext(c)); err != nil {
			writeGinError(c, err)
			c.Abort()
		}
	}
}

func writeGinError(c *gin.Context, err error) {
	if c.Writer.Written() {
		return
	}
	httpErr := fwmap.AsHTTPError(err)
	c.JSON(httpErr.Code, errorBody(httpErr.Message))
}

func ginRequestContext(c *gin.Context) *GinRequestContext {
	if v, ok := c.Get(ginContextKey); ok {
		if rc, ok := v.(*GinRequestContext); ok {
			return rc
		}
	}
	rc := &GinRequestContext{context: c, params: make(map[string]string)}
	c.Set(ginContextKey, rc)
	return rc
}

// GinRequestContext implements fwmap.RequestContext for Gin
type GinRequestContext struct {
	context *gin.Context
	params  map[string]string
}

func (grc *GinRequestContext) Context() context.Context {
	return grc.context.Request.Context()
}

func (grc *GinRequestContext) Method() string {
	return grc.context.Request.Method
}

func (grc *GinRequestContext) Path() string {
	return grc.context.Request.URL.Path
}

func (grc *GinRequestContext) RealIP() string {
	return grc.context.ClientIP()
}

// Param returns a parameter set by the dispatcher, falling back to Gin's own.
// Gin stores wildcards under the name "path".
func (grc *GinRequestContext) Param(key string) string {
	if v, ok := grc.params[key]; ok {
		return v
	}
	if key == fwmap.WildcardParam {
		key = "path"
	}
	return grc.context.Param(key)
}

func (grc *GinRequestContext) SetParam(name, value string) {
	grc.params[name] = value
}

func (grc *GinRequestContext) QueryParam(key string) string {
	return grc.context.Query(key)
}

func (grc *GinRequestContext) Header(key string) string {
	return grc.context.GetHeader(key)
}

func (grc *GinRequestContext) Bind(i any) error {
	return grc.context.ShouldBind(i)
}

func (grc *GinRequestContext) Get(key string) any {
	v, _ := grc.context.Get(key)
	return v
}

func (grc *GinRequestContext) Set(key string, val any) {
	grc.context.Set(key, val)
}

func (grc *GinRequestContext) Response() fwmap.ResponseWriter {
	return &GinResponseWriter{context: grc.context}
}

// GinResponseWriter implements fwmap.ResponseWriter for Gin
type GinResponseWriter struct {
	context *gin.Context
}

func (grw *GinResponseWriter) SetHeader(key, value string) {
	grw.context.Header(key, value)
}

func (grw *GinResponseWriter) Status() int {
	return grw.context.Writer.Status()
}

func (grw *GinResponseWriter) JSON(code int, i any) error {
	grw.context.JSON(code, i)
	return nil
}

func (grw *GinResponseWriter) String(code int, s string) error {
	grw.context.String(code, "%s", s)
	return nil
}

func (grw *GinResponseWriter) NoContent(code int) error {
	grw.context.Status(code)
	grw.context.Writer.WriteHeaderNow()
	return nil
}

func (grw *GinResponseWriter) Written() bool {
	return grw.context.Writer.Written()
}

var _ fwmap.WebServerInterface = (*GinAdapter)(nil)
