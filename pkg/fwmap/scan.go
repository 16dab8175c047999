package fwmap

import (
	"fmt"
	"strings"
)

// Base packages scanned for framework controllers
const (
	FrameworkBasePackageOrg = "org.broadleafcommerce"
	FrameworkBasePackageCom = "com.broadleafcommerce"
)

// FrameworkBasePackages returns the package prefixes that hold framework controllers
func FrameworkBasePackages() []string {
	return []string{FrameworkBasePackageOrg, FrameworkBasePackageCom}
}

// ComponentScan selects registered components by package and filters
type ComponentScan struct {
	// Name identifies the directive in errors and logs
	Name string

	BasePackages      []string
	IncludeFilters    []TypeFilter
	ExcludeFilters    []TypeFilter
	UseDefaultFilters bool
}

// Info returns the annotation descriptor of the directive
func (s ComponentScan) Info() AnnotationInfo {
	return AnnotationInfo{
		Name:      s.Name,
		Retention: RetentionRuntime,
		Target:    TargetType,
		Attributes: map[string]string{
			"basePackages":      strings.Join(s.BasePackages, ","),
			"useDefaultFilters": fmt.Sprintf("%t", s.UseDefaultFilters),
		},
	}
}

// ScanOption customizes the framework scan directives
type ScanOption func(*ComponentScan)

// WithExcludeFilters adds exclude filters to a directive
func WithExcludeFilters(filters ...TypeFilter) ScanOption {
	return func(s *ComponentScan) {
		s.ExcludeFilters = append(s.ExcludeFilters, filters...)
	}
}

// WithBasePackages replaces the base packages of a directive
func WithBasePackages(packages ...string) ScanOption {
	return func(s *ComponentScan) {
		s.BasePackages = append([]string(nil), packages...)
	}
}

// EnableAllFrameworkControllers scans the framework base packages for both
// framework controller stereotypes. Default filters are disabled.
//
// Do not combine it with another scan directive on the same Configuration;
// declare it on a configuration of its own instead.
func EnableAllFrameworkControllers() ComponentScan {
	return ComponentScan{
		Name:              "enable_all_framework_controllers",
		BasePackages:      FrameworkBasePackages(),
		IncludeFilters:    []TypeFilter{NewAnnotationFilter(FrameworkController, FrameworkRestController)},
		UseDefaultFilters: false,
	}
}

// EnableFrameworkControllers scans the framework base packages for
// FrameworkController components only. Use WithExcludeFilters to disable
// individual controllers.
func EnableFrameworkControllers(opts ...ScanOption) ComponentScan {
	scan := ComponentScan{
		Name:              "enable_framework_controllers",
		BasePackages:      FrameworkBasePackages(),
		IncludeFilters:    []TypeFilter{frameworkOnlyFilter{FrameworkController}},
		UseDefaultFilters: false,
	}
	for _, opt := range opts {
		opt(&scan)
	}
	return scan
}

// EnableFrameworkRestControllers scans the framework base packages for
// FrameworkRestController components only.
func EnableFrameworkRestControllers(opts ...ScanOption) ComponentScan {
	scan := ComponentScan{
		Name:              "enable_framework_rest_controllers",
		BasePackages:      FrameworkBasePackages(),
		IncludeFilters:    []TypeFilter{NewAnnotationFilter(FrameworkRestController)},
		UseDefaultFilters: false,
	}
	for _, opt := range opts {
		opt(&scan)
	}
	return scan
}

// frameworkOnlyFilter matches one stereotype exactly, without specializations.
// EnableFrameworkControllers and EnableFrameworkRestControllers must not overlap.
type frameworkOnlyFilter struct {
	stereotype Stereotype
}

func (f frameworkOnlyFilter) Match(c Component) bool {
	return c.Marker.Stereotype == f.stereotype
}

func (f frameworkOnlyFilter) String() string {
	return "annotation(" + f.stereotype.String() + ",exact)"
}

// Scanner applies scan directives to candidate components
type Scanner struct{}

// NewScanner creates a Scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the candidates selected by scan. declaringPackage is used
// when the scan names no base packages.
func (s *Scanner) Scan(scan ComponentScan, declaringPackage string, candidates []Component) ([]Component, error) {
	basePackages := scan.BasePackages
	if len(basePackages) == 0 {
		if declaringPackage == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoBasePackages, scan.Name)
		}
		basePackages = []string{declaringPackage}
	}

	includes := scan.IncludeFilters
	if scan.UseDefaultFilters {
		includes = append(DefaultFilters(), includes...)
	}

	var selected []Component
	for _, c := range candidates {
		if !inBasePackages(c.PackagePath, basePackages) {
			continue
		}
		if !anyMatch(includes, c) {
			continue
		}
		if anyMatch(scan.ExcludeFilters, c) {
			continue
		}
		selected = append(selected, c)
	}
	return selected, nil
}

func anyMatch(filters []TypeFilter, c Component) bool {
	for _, f := range filters {
		if f.Match(c) {
			return true
		}
	}
	return false
}

// inBasePackages reports whether pkg is one of bases or lies beneath one
func inBasePackages(pkg string, bases []string) bool {
	for _, base := range bases {
		base = strings.TrimSuffix(base, "/")
		if pkg == base || strings.HasPrefix(pkg, base+"/") {
			return true
		}
	}
	return false
}

// Configuration hosts scan directives, like a configuration class
type Configuration struct {
	PackagePath string
	TypeName    string
	Scans       []ComponentScan
}

// QualifiedName returns the package path and type name joined with a dot
func (c Configuration) QualifiedName() string {
	if c.PackagePath == "" {
		return c.TypeName
	}
	return c.PackagePath + "." + c.TypeName
}

// Validate enforces one scan directive per configuration
func (c Configuration) Validate() error {
	if len(c.Scans) > 1 {
		names := make([]string, len(c.Scans))
		for i, s := range c.Scans {
			names[i] = s.Name
		}
		return fmt.Errorf("%w: %s declares %s; declare each directive on its own configuration type",
			ErrScanComposition, c.QualifiedName(), strings.Join(names, " and "))
	}
	return nil
}
