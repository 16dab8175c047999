// Package framework holds the default controllers a framework module ships.
// Its registrations are generated with the framework base package as module
// path so that EnableAllFrameworkControllers finds them:
//
//go:generate go run github.com/toyz/fwmap/cmd/fwmap --module org.broadleafcommerce .
package framework

import (
	"net/http"
	"time"

	"github.com/toyz/fwmap/pkg/fwmap"
)

// Responses written by the default controller
const (
	DefaultGetResponse     = "frameworkControllerGetResponse"
	DefaultOnlyGetResponse = "frameworkControllerOnlyGetResponse"
)

//axon::framework_rest_controller
type DefaultController struct{}

//axon::framework_mapping GET /overridden-get
func (c *DefaultController) OverriddenGet() (string, error) {
	return DefaultGetResponse, nil
}

//axon::framework_mapping GET /default-only-get
func (c *DefaultController) DefaultOnlyGet() (string, error) {
	return DefaultOnlyGetResponse, nil
}

// Status is the body of the status endpoint
type Status struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

//axon::framework_rest_controller statusController
type StatusController struct{}

//axon::framework_mapping GET /status
func (c *StatusController) Status() (*Status, error) {
	return &Status{Status: "ok", Time: time.Now().UTC()}, nil
}

//axon::framework_mapping GET /static/{*}
func (c *StatusController) Static(ctx fwmap.RequestContext) error {
	return fwmap.NewHTTPError(http.StatusNotFound, "no static asset "+ctx.Param("*"))
}

//axon::enable_all_framework_controllers
type FrameworkConfig struct{}
