package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// AnnotationType identifies an axon:: annotation understood by fwmap
type AnnotationType int

const (
	UnknownAnnotation AnnotationType = iota

	// Stereotype markers, placed on struct types
	ControllerAnnotation
	RestControllerAnnotation
	FrameworkControllerAnnotation
	FrameworkRestControllerAnnotation

	// Mappings, placed on methods
	RouteAnnotation
	FrameworkMappingAnnotation

	// Scan directives, placed on configuration struct types
	EnableAllFrameworkControllersAnnotation
	EnableFrameworkControllersAnnotation
	EnableFrameworkRestControllersAnnotation
	ComponentScanAnnotation
)

var annotationNames = map[AnnotationType]string{
	ControllerAnnotation:                     "controller",
	RestControllerAnnotation:                 "rest_controller",
	FrameworkControllerAnnotation:            "framework_controller",
	FrameworkRestControllerAnnotation:        "framework_rest_controller",
	RouteAnnotation:                          "route",
	FrameworkMappingAnnotation:               "framework_mapping",
	EnableAllFrameworkControllersAnnotation:  "enable_all_framework_controllers",
	EnableFrameworkControllersAnnotation:     "enable_framework_controllers",
	EnableFrameworkRestControllersAnnotation: "enable_framework_rest_controllers",
	ComponentScanAnnotation:                  "component_scan",
}

// String returns the annotation name as written after axon::
func (a AnnotationType) String() string {
	if name, ok := annotationNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAnnotationType converts an annotation name to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	for t, name := range annotationNames {
		if name == s {
			return t, nil
		}
	}
	return UnknownAnnotation, fmt.Errorf("unknown annotation type: %s", s)
}

// IsStereotype reports whether a marks a controller type
func (a AnnotationType) IsStereotype() bool {
	return a >= ControllerAnnotation && a <= FrameworkRestControllerAnnotation
}

// IsFramework reports whether a is a framework stereotype or mapping
func (a AnnotationType) IsFramework() bool {
	return a == FrameworkControllerAnnotation || a == FrameworkRestControllerAnnotation || a == FrameworkMappingAnnotation
}

// IsMapping reports whether a maps a method to a route
func (a AnnotationType) IsMapping() bool {
	return a == RouteAnnotation || a == FrameworkMappingAnnotation
}

// IsScan reports whether a is a scan directive
func (a AnnotationType) IsScan() bool {
	return a >= EnableAllFrameworkControllersAnnotation && a <= ComponentScanAnnotation
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// ParsedAnnotation is an annotation with its arguments checked against a schema
type ParsedAnnotation struct {
	Type       AnnotationType
	Target     string         // type or Type.Method the annotation is attached to
	Args       []string       // positional arguments
	Parameters map[string]any // -Name=value parameters, converted per schema
	Location   SourceLocation
	Raw        string
}

// Arg returns the positional argument at i, or "" when absent
func (p *ParsedAnnotation) Arg(i int) string {
	if i < len(p.Args) {
		return p.Args[i]
	}
	return ""
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(name string, defaultValue ...string) string {
	if v, ok := p.Parameters[name].(string); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(name string, defaultValue ...bool) bool {
	if v, ok := p.Parameters[name].(bool); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetStringSlice returns a string slice parameter value with optional default
func (p *ParsedAnnotation) GetStringSlice(name string, defaultValue ...[]string) []string {
	if v, ok := p.Parameters[name].([]string); ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// HasParameter checks if a parameter was given
func (p *ParsedAnnotation) HasParameter(name string) bool {
	_, ok := p.Parameters[name]
	return ok
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// convert turns a raw parameter value into the Go type of t.
// A nil raw value means the parameter was given without =value.
func (t ParameterType) convert(raw *string, defaultValue any) (any, error) {
	if raw == nil {
		if t == BoolType {
			return true, nil
		}
		if defaultValue != nil {
			return defaultValue, nil
		}
		return nil, fmt.Errorf("expects a %s value", t)
	}

	switch t {
	case BoolType:
		b, err := strconv.ParseBool(*raw)
		if err != nil {
			return nil, fmt.Errorf("expects true or false, got %q", *raw)
		}
		return b, nil
	case StringSliceType:
		var items []string
		for _, item := range strings.Split(*raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("expects a comma separated list")
		}
		return items, nil
	default:
		return *raw, nil
	}
}

// Target describes what an annotation may be attached to
type Target int

const (
	TypeTarget Target = iota
	MethodTarget
)

func (t Target) String() string {
	if t == MethodTarget {
		return "method"
	}
	return "type"
}

// ParameterSpec defines an annotation parameter
type ParameterSpec struct {
	Type         ParameterType
	DefaultValue any
	Description  string
	Validator    func(any) error
}

// AnnotationSchema defines the arguments an annotation accepts
type AnnotationSchema struct {
	Type          AnnotationType
	Target        Target
	Description   string
	MinArgs       int
	MaxArgs       int
	ArgNames      []string
	ArgValidators map[int]func(string) error
	Parameters    map[string]ParameterSpec
	Examples      []string
}
