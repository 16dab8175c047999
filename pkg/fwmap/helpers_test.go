package fwmap

import (
	"context"
	"net/http"
)

// testContext is an in-memory RequestContext
type testContext struct {
	method  string
	path    string
	params  map[string]string
	query   map[string]string
	headers map[string]string
	values  map[string]any
	resp    *testResponse
}

func newTestContext(method, path string) *testContext {
	return &testContext{
		method:  method,
		path:    path,
		params:  make(map[string]string),
		query:   make(map[string]string),
		headers: make(map[string]string),
		values:  make(map[string]any),
		resp:    &testResponse{status: http.StatusOK, headers: make(map[string]string)},
	}
}

func (c *testContext) Context() context.Context     { return context.Background() }
func (c *testContext) Method() string               { return c.method }
func (c *testContext) Path() string                 { return c.path }
func (c *testContext) RealIP() string               { return "127.0.0.1" }
func (c *testContext) Param(key string) string      { return c.params[key] }
func (c *testContext) SetParam(name, value string)  { c.params[name] = value }
func (c *testContext) QueryParam(key string) string { return c.query[key] }
func (c *testContext) Header(key string) string     { return c.headers[key] }
func (c *testContext) Bind(i any) error             { return nil }
func (c *testContext) Get(key string) any           { return c.values[key] }
func (c *testContext) Set(key string, val any)      { c.values[key] = val }
func (c *testContext) Response() ResponseWriter     { return c.resp }

type testResponse struct {
	status  int
	body    any
	headers map[string]string
	written bool
}

func (r *testResponse) SetHeader(key, value string) { r.headers[key] = value }
func (r *testResponse) Status() int                 { return r.status }
func (r *testResponse) Written() bool               { return r.written }

func (r *testResponse) JSON(code int, i any) error {
	r.status, r.body, r.written = code, i, true
	return nil
}

func (r *testResponse) String(code int, s string) error {
	r.status, r.body, r.written = code, s, true
	return nil
}

func (r *testResponse) NoContent(code int) error {
	r.status, r.body, r.written = code, nil, true
	return nil
}

func stringHandler(body string) HandlerFunc {
	return func(ctx RequestContext) error {
		return ctx.Response().String(http.StatusOK, body)
	}
}

func route(method, pattern, handler string) RouteInfo {
	return RouteInfo{
		Method:        method,
		Pattern:       MustParsePattern(pattern),
		HandlerName:   handler,
		QualifiedName: "example.com/app.Controller",
		Handler:       stringHandler(handler),
	}
}
