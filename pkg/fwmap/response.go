package fwmap

import (
	"net/http"
	"reflect"
)

// Response lets a handler method control the status code of its result.
//
//	func (c *OrderController) Create() (*fwmap.Response, error) {
//		return fwmap.Created(order), nil
//	}
type Response struct {
	StatusCode int `json:"-"`
	Body       any `json:"body,omitempty"`
}

// NewResponse creates a new Response with the specified status code and body
func NewResponse(statusCode int, body any) *Response {
	return &Response{StatusCode: statusCode, Body: body}
}

// OK creates a 200 OK response
func OK(body any) *Response {
	return NewResponse(http.StatusOK, body)
}

// Created creates a 201 Created response
func Created(body any) *Response {
	return NewResponse(http.StatusCreated, body)
}

// NoContent creates a 204 No Content response
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, nil)
}

// Render writes the result of a handler method. Strings are written as
// text, *Response values with their status code, anything else as JSON.
// A nil result, typed or not, is written as 204 No Content.
// A non-nil err is returned unchanged for the adapter to report.
func Render(ctx RequestContext, result any, err error) error {
	if err != nil {
		return err
	}
	if isNil(result) {
		return ctx.Response().NoContent(http.StatusNoContent)
	}

	switch v := result.(type) {
	case *Response:
		code := v.StatusCode
		if isNil(v.Body) {
			if code == 0 {
				code = http.StatusNoContent
			}
			return ctx.Response().NoContent(code)
		}
		if code == 0 {
			code = http.StatusOK
		}
		if s, ok := v.Body.(string); ok {
			return ctx.Response().String(code, s)
		}
		return ctx.Response().JSON(code, v.Body)
	case string:
		return ctx.Response().String(http.StatusOK, v)
	default:
		return ctx.Response().JSON(http.StatusOK, v)
	}
}

// isNil reports whether v is nil or a nil pointer, map, slice or interface
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Bind adapts a typed handler method to a HandlerFunc.
// Generated code uses it for methods of the form func() (T, error).
func Bind[T any](method func() (T, error)) HandlerFunc {
	return func(ctx RequestContext) error {
		result, err := method()
		return Render(ctx, result, err)
	}
}

// BindContext adapts a typed handler method that reads the request.
// Generated code uses it for methods of the form func(RequestContext) (T, error).
func BindContext[T any](method func(RequestContext) (T, error)) HandlerFunc {
	return func(ctx RequestContext) error {
		result, err := method(ctx)
		return Render(ctx, result, err)
	}
}
