// Package fwmap registers framework default controllers that an application
// can override.
//
// Controllers are registered as Components, either by hand or by code that
// the fwmap generator writes from source annotations:
//
//	//axon::framework_rest_controller
//	type DefaultPageController struct{}
//
//	//axon::framework_mapping GET /overridden-get
//	func (c *DefaultPageController) Get() (string, error) { ... }
//
// ComponentScan directives select the components an application uses.
// EnableAllFrameworkControllers selects every framework controller below the
// framework base packages. An ApplicationContext builds two handler mappings
// from the selection: application mappings (order 0) and framework mappings
// (order 10). The Dispatcher consults them in order, so an application
// mapping replaces a framework mapping with an equivalent pattern without
// causing an ambiguous mapping error.
package fwmap
