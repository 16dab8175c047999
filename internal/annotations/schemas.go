package annotations

import (
	"fmt"
	"regexp"
	"strings"
)

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

var stereotypeNames = map[string]bool{
	"controller": true, "rest_controller": true,
	"framework_controller": true, "framework_rest_controller": true,
}

func validateMethod(s string) error {
	if !httpMethods[s] {
		return fmt.Errorf("invalid HTTP method %q (use GET, POST, PUT, DELETE, PATCH, HEAD or OPTIONS)", s)
	}
	return nil
}

func validatePath(s string) error {
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("path %q must start with '/'", s)
	}
	return nil
}

func validateStereotypes(v any) error {
	for _, name := range v.([]string) {
		if !stereotypeNames[name] {
			return fmt.Errorf("unknown stereotype %q", name)
		}
	}
	return nil
}

func validateRegexps(v any) error {
	for _, expr := range v.([]string) {
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
	}
	return nil
}

func stereotypeSchema(t AnnotationType, description string) AnnotationSchema {
	return AnnotationSchema{
		Type:        t,
		Target:      TypeTarget,
		Description: description,
		MaxArgs:     1,
		ArgNames:    []string{"value"},
		Examples: []string{
			"//axon::" + t.String(),
			"//axon::" + t.String() + " pageController",
		},
	}
}

func mappingSchema(t AnnotationType, description string) AnnotationSchema {
	return AnnotationSchema{
		Type:        t,
		Target:      MethodTarget,
		Description: description,
		MinArgs:     2,
		MaxArgs:     2,
		ArgNames:    []string{"method", "path"},
		ArgValidators: map[int]func(string) error{
			0: validateMethod,
			1: validatePath,
		},
		Examples: []string{"//axon::" + t.String() + " GET /pages/{id:int}"},
	}
}

var excludeParam = ParameterSpec{
	Type:        StringSliceType,
	Description: "regular expressions on qualified type names to leave out",
	Validator:   validateRegexps,
}

var basePackagesParam = ParameterSpec{
	Type:        StringSliceType,
	Description: "import path prefixes to scan",
}

// DefaultSchemas returns the schemas of every fwmap annotation
func DefaultSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		stereotypeSchema(ControllerAnnotation, "Application controller; its mappings take precedence"),
		stereotypeSchema(RestControllerAnnotation, "Application controller whose results are response bodies"),
		stereotypeSchema(FrameworkControllerAnnotation, "Framework default controller; used when no application mapping matches"),
		stereotypeSchema(FrameworkRestControllerAnnotation, "REST flavour of framework_controller"),
		mappingSchema(RouteAnnotation, "Maps an application controller method"),
		mappingSchema(FrameworkMappingAnnotation, "Maps a framework controller method"),
		{
			Type:        EnableAllFrameworkControllersAnnotation,
			Target:      TypeTarget,
			Description: "Scans the framework base packages for all framework controllers",
			Examples:    []string{"//axon::enable_all_framework_controllers"},
		},
		{
			Type:        EnableFrameworkControllersAnnotation,
			Target:      TypeTarget,
			Description: "Scans the framework base packages for framework_controller types only",
			Parameters: map[string]ParameterSpec{
				"Exclude":      excludeParam,
				"BasePackages": basePackagesParam,
			},
			Examples: []string{"//axon::enable_framework_controllers -Exclude=.*AdminController"},
		},
		{
			Type:        EnableFrameworkRestControllersAnnotation,
			Target:      TypeTarget,
			Description: "Scans the framework base packages for framework_rest_controller types only",
			Parameters: map[string]ParameterSpec{
				"Exclude":      excludeParam,
				"BasePackages": basePackagesParam,
			},
			Examples: []string{"//axon::enable_framework_rest_controllers"},
		},
		{
			Type:        ComponentScanAnnotation,
			Target:      TypeTarget,
			Description: "General scan directive; defaults to the declaring package and default filters",
			Parameters: map[string]ParameterSpec{
				"BasePackages": basePackagesParam,
				"Include": {
					Type:        StringSliceType,
					Description: "stereotypes to include",
					Validator:   validateStereotypes,
				},
				"Exclude": excludeParam,
				"UseDefaultFilters": {
					Type:         BoolType,
					DefaultValue: true,
					Description:  "include controller and rest_controller types",
				},
			},
			Examples: []string{
				"//axon::component_scan",
				"//axon::component_scan -BasePackages=example.com/shop -UseDefaultFilters=false -Include=framework_controller",
			},
		},
	}
}
