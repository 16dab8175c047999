package fwmap

import (
	"fmt"
	"sort"
	"sync"
)

// MappingDefinition describes one handler method of a component
type MappingDefinition struct {
	Method      string
	Path        string
	HandlerName string

	// Handler is used as is when set
	Handler HandlerFunc

	// Bind produces the handler from the component instance when Handler is nil
	Bind func(instance any) HandlerFunc
}

// Component is a registered controller type
type Component struct {
	PackagePath string
	TypeName    string
	Marker      Marker

	// New creates the component instance. May be nil for stateless components.
	New func() any

	Mappings []MappingDefinition
}

// QualifiedName returns the package path and type name joined with a dot
func (c Component) QualifiedName() string {
	if c.PackagePath == "" {
		return c.TypeName
	}
	return c.PackagePath + "." + c.TypeName
}

// Name returns the marker value, or the type name with a lower-case first letter
func (c Component) Name() string {
	if c.Marker.Value != "" {
		return c.Marker.Value
	}
	return defaultComponentName(c.TypeName)
}

// Validate checks the component and its mapping definitions
func (c Component) Validate() error {
	if c.TypeName == "" {
		return fmt.Errorf("%w: component in %q has no type name", ErrInvalidMapping, c.PackagePath)
	}
	if c.Marker.Stereotype < Controller || c.Marker.Stereotype > FrameworkRestController {
		return fmt.Errorf("%w: component %s has no stereotype", ErrInvalidMapping, c.QualifiedName())
	}
	for _, m := range c.Mappings {
		if !IsSupportedMethod(m.Method) {
			return fmt.Errorf("%w: %s.%s: unsupported method %q", ErrInvalidMapping, c.QualifiedName(), m.HandlerName, m.Method)
		}
		if _, err := ParsePattern(m.Path); err != nil {
			return fmt.Errorf("%s.%s: %w", c.QualifiedName(), m.HandlerName, err)
		}
		if (m.Handler == nil) == (m.Bind == nil) {
			return fmt.Errorf("%w: %s.%s: exactly one of Handler or Bind must be set", ErrInvalidMapping, c.QualifiedName(), m.HandlerName)
		}
	}
	return nil
}

// ComponentRegistry is the table of components available for scanning
type ComponentRegistry interface {
	RegisterComponent(c Component) error
	RegisterConfiguration(cfg Configuration) error

	Components() []Component
	Configurations() []Configuration
}

// InMemoryComponentRegistry implements ComponentRegistry
type InMemoryComponentRegistry struct {
	mu             sync.RWMutex
	components     map[string]Component
	configurations map[string]Configuration
}

// NewInMemoryComponentRegistry creates an empty registry
func NewInMemoryComponentRegistry() *InMemoryComponentRegistry {
	return &InMemoryComponentRegistry{
		components:     make(map[string]Component),
		configurations: make(map[string]Configuration),
	}
}

// RegisterComponent validates and adds a component. Registering the same
// qualified name twice is an error.
func (r *InMemoryComponentRegistry) RegisterComponent(c Component) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := c.QualifiedName()
	if _, exists := r.components[key]; exists {
		return fmt.Errorf("%w: %s is already registered", ErrDuplicateComponent, key)
	}
	r.components[key] = c
	return nil
}

// RegisterConfiguration validates and adds a configuration
func (r *InMemoryComponentRegistry) RegisterConfiguration(cfg Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cfg.QualifiedName()
	if _, exists := r.configurations[key]; exists {
		return fmt.Errorf("configuration %s is already registered", key)
	}
	r.configurations[key] = cfg
	return nil
}

// Components returns registered components sorted by qualified name
func (r *InMemoryComponentRegistry) Components() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Component, 0, len(r.components))
	for _, c := range r.components {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].QualifiedName() < result[j].QualifiedName()
	})
	return result
}

// Configurations returns registered configurations sorted by qualified name
func (r *InMemoryComponentRegistry) Configurations() []Configuration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Configuration, 0, len(r.configurations))
	for _, cfg := range r.configurations {
		result = append(result, cfg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].QualifiedName() < result[j].QualifiedName()
	})
	return result
}

// DefaultComponentRegistry is the global registry used by generated code
var DefaultComponentRegistry ComponentRegistry = NewInMemoryComponentRegistry()

// RegisterComponent registers a component with the global registry.
// It panics on error since it is meant to be called from init functions.
func RegisterComponent(c Component) {
	if err := DefaultComponentRegistry.RegisterComponent(c); err != nil {
		panic(err)
	}
}

// RegisterConfiguration registers a configuration with the global registry.
// It panics on error since it is meant to be called from init functions.
func RegisterConfiguration(cfg Configuration) {
	if err := DefaultComponentRegistry.RegisterConfiguration(cfg); err != nil {
		panic(err)
	}
}
