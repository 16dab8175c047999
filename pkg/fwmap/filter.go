package fwmap

import (
	"fmt"
	"regexp"
	"strings"
)

// TypeFilter decides whether a candidate component takes part in a scan
type TypeFilter interface {
	Match(c Component) bool
	String() string
}

// AnnotationFilter matches components whose marker is, or specializes, one of Stereotypes
type AnnotationFilter struct {
	Stereotypes []Stereotype
}

// NewAnnotationFilter creates an AnnotationFilter
func NewAnnotationFilter(stereotypes ...Stereotype) AnnotationFilter {
	return AnnotationFilter{Stereotypes: stereotypes}
}

func (f AnnotationFilter) Match(c Component) bool {
	for _, s := range f.Stereotypes {
		if c.Marker.Stereotype.Is(s) {
			return true
		}
	}
	return false
}

func (f AnnotationFilter) String() string {
	names := make([]string, len(f.Stereotypes))
	for i, s := range f.Stereotypes {
		names[i] = s.String()
	}
	return "annotation(" + strings.Join(names, ",") + ")"
}

// RegexFilter matches components whose qualified name matches a regular expression
type RegexFilter struct {
	re *regexp.Regexp
}

// NewRegexFilter compiles expr into a RegexFilter
func NewRegexFilter(expr string) (RegexFilter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return RegexFilter{}, fmt.Errorf("invalid filter pattern %q: %w", expr, err)
	}
	return RegexFilter{re: re}, nil
}

// MustRegexFilter is like NewRegexFilter but panics on error
func MustRegexFilter(expr string) RegexFilter {
	f, err := NewRegexFilter(expr)
	if err != nil {
		panic(err)
	}
	return f
}

func (f RegexFilter) Match(c Component) bool {
	return f.re != nil && f.re.MatchString(c.QualifiedName())
}

func (f RegexFilter) String() string {
	if f.re == nil {
		return "regex()"
	}
	return "regex(" + f.re.String() + ")"
}

// NameFilter matches components by exact qualified name or component name
type NameFilter struct {
	Names []string
}

func (f NameFilter) Match(c Component) bool {
	for _, name := range f.Names {
		if name == c.QualifiedName() || name == c.Name() {
			return true
		}
	}
	return false
}

func (f NameFilter) String() string {
	return "name(" + strings.Join(f.Names, ",") + ")"
}

// DefaultFilters are applied when a scan uses default filters.
// Framework stereotypes are not included.
func DefaultFilters() []TypeFilter {
	return []TypeFilter{NewAnnotationFilter(Controller, RestController)}
}
