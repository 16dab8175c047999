// Package app is an application overriding one of the framework defaults
//
//go:generate go run github.com/toyz/fwmap/cmd/fwmap .
package app

import (
	"github.com/toyz/fwmap/pkg/fwmap"
)

// Responses written by the custom controller
const (
	CustomGetResponse     = "customControllerGetResponse"
	CustomOnlyGetResponse = "customControllerOnlyGetResponse"
)

//axon::rest_controller
type CustomController struct{}

//axon::route GET /overridden-get
func (c *CustomController) OverriddenGet() (string, error) {
	return CustomGetResponse, nil
}

//axon::route GET /custom-only-get
func (c *CustomController) CustomOnlyGet() (string, error) {
	return CustomOnlyGetResponse, nil
}

// Greeting is the body of the hello endpoint
type Greeting struct {
	Message string `json:"message"`
	From    string `json:"from"`
}

//axon::route GET /hello/{name}
func (c *CustomController) Hello(ctx fwmap.RequestContext) (*Greeting, error) {
	return &Greeting{Message: "hello " + ctx.Param("name"), From: ctx.RealIP()}, nil
}

//axon::component_scan
type AppConfig struct{}
