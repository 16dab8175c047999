package fwmap

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stereotype identifies the role a component plays in request mapping
type Stereotype int

const (
	// Controller marks an application controller. Its mappings take precedence.
	Controller Stereotype = iota + 1
	// RestController is a Controller whose results are written as response bodies
	RestController
	// FrameworkController marks a default controller supplied by a framework module.
	// Its mappings are only used when no application mapping matches.
	FrameworkController
	// FrameworkRestController is the REST flavour of FrameworkController
	FrameworkRestController
)

// String returns the annotation name of the stereotype
func (s Stereotype) String() string {
	switch s {
	case Controller:
		return "controller"
	case RestController:
		return "rest_controller"
	case FrameworkController:
		return "framework_controller"
	case FrameworkRestController:
		return "framework_rest_controller"
	default:
		return "unknown"
	}
}

// ParseStereotype converts an annotation name to a Stereotype
func ParseStereotype(s string) (Stereotype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "controller":
		return Controller, nil
	case "rest_controller":
		return RestController, nil
	case "framework_controller":
		return FrameworkController, nil
	case "framework_rest_controller":
		return FrameworkRestController, nil
	default:
		return 0, fmt.Errorf("unknown stereotype: %s", s)
	}
}

// Is reports whether s is other or a specialization of it
func (s Stereotype) Is(other Stereotype) bool {
	if s == other {
		return true
	}
	switch s {
	case RestController:
		return other == Controller
	case FrameworkRestController:
		return other == FrameworkController
	}
	return false
}

// IsFramework reports whether mappings of this stereotype are framework defaults
func (s Stereotype) IsFramework() bool {
	return s.Is(FrameworkController)
}

// Marker is the tag attached to a controller type
type Marker struct {
	Stereotype Stereotype
	// Value is an optional logical name for the component
	Value string
}

// Retention describes when annotation metadata is visible
type Retention int

const (
	RetentionSource Retention = iota
	RetentionRuntime
)

// Target describes what kind of declaration an annotation applies to
type Target int

const (
	TargetType Target = iota
	TargetMethod
)

// AnnotationInfo describes an annotation and its attributes
type AnnotationInfo struct {
	Name       string
	Retention  Retention
	Target     Target
	Attributes map[string]string // attribute name -> default value
}

// MarkerInfo returns the annotation descriptor for a stereotype marker.
// Markers are type-level and stay visible at runtime through the component registry.
func MarkerInfo(s Stereotype) AnnotationInfo {
	return AnnotationInfo{
		Name:       s.String(),
		Retention:  RetentionRuntime,
		Target:     TargetType,
		Attributes: map[string]string{"value": ""},
	}
}

// defaultComponentName derives a component name from its type name
func defaultComponentName(typeName string) string {
	if typeName == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(typeName)
	return string(unicode.ToLower(r)) + typeName[size:]
}
