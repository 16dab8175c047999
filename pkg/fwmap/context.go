package fwmap

import (
	"fmt"
	"log/slog"
	"sync"
)

// ApplicationContext turns registered components into a Dispatcher
type ApplicationContext struct {
	registry       ComponentRegistry
	logger         *slog.Logger
	configurations []Configuration
	extraMappings  []HandlerMapping
	scanner        *Scanner

	mu         sync.RWMutex
	refreshed  bool
	components map[string]Component
	instances  map[string]any
	requests   *MappingTable
	framework  *MappingTable
	dispatcher *Dispatcher
}

// ContextOption configures an ApplicationContext
type ContextOption func(*ApplicationContext)

// WithRegistry sets the component registry. Defaults to DefaultComponentRegistry.
func WithRegistry(registry ComponentRegistry) ContextOption {
	return func(c *ApplicationContext) {
		c.registry = registry
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *ApplicationContext) {
		c.logger = logger
	}
}

// WithConfiguration adds a configuration in addition to the registered ones
func WithConfiguration(cfg Configuration) ContextOption {
	return func(c *ApplicationContext) {
		c.configurations = append(c.configurations, cfg)
	}
}

// WithScan adds a configuration holding a single scan directive
func WithScan(scan ComponentScan) ContextOption {
	return func(c *ApplicationContext) {
		c.configurations = append(c.configurations, Configuration{TypeName: scan.Name, Scans: []ComponentScan{scan}})
	}
}

// WithHandlerMapping adds a custom handler mapping to the dispatcher
func WithHandlerMapping(hm HandlerMapping) ContextOption {
	return func(c *ApplicationContext) {
		c.extraMappings = append(c.extraMappings, hm)
	}
}

// NewApplicationContext creates a context; call Refresh before dispatching
func NewApplicationContext(opts ...ContextOption) *ApplicationContext {
	c := &ApplicationContext{
		registry: DefaultComponentRegistry,
		logger:   slog.Default(),
		scanner:  NewScanner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh applies every scan directive, instantiates the selected components
// and builds the request and framework mapping tables.
func (c *ApplicationContext) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshed {
		return ErrAlreadyRefreshed
	}

	configurations := append(c.registry.Configurations(), c.configurations...)
	candidates := c.registry.Components()

	selected, err := c.scan(configurations, candidates)
	if err != nil {
		return err
	}

	components := make(map[string]Component, len(selected))
	for _, comp := range selected {
		name := comp.Name()
		if existing, ok := components[name]; ok {
			return fmt.Errorf("%w: %q is used by %s and %s",
				ErrDuplicateComponent, name, existing.QualifiedName(), comp.QualifiedName())
		}
		components[name] = comp
	}

	requests := NewRequestMappingTable()
	framework := NewFrameworkMappingTable()
	instances := make(map[string]any, len(selected))

	for _, comp := range selected {
		var instance any
		if comp.New != nil {
			instance = comp.New()
		}
		instances[comp.Name()] = instance

		table := requests
		if comp.Marker.Stereotype.IsFramework() {
			table = framework
		}
		if err := c.bind(table, comp, instance); err != nil {
			return err
		}
	}

	mappings := append([]HandlerMapping{requests, framework}, c.extraMappings...)
	dispatcher := NewDispatcher(mappings...)

	for _, route := range dispatcher.Routes() {
		if route.Overridden {
			c.logger.Info("framework mapping overridden",
				"method", route.Method,
				"pattern", route.Pattern.String(),
				"handler", route.QualifiedName+"."+route.HandlerName,
				"overridden_by", route.OverriddenBy,
			)
		}
	}

	c.components = components
	c.instances = instances
	c.requests = requests
	c.framework = framework
	c.dispatcher = dispatcher
	c.refreshed = true

	c.logger.Info("application context refreshed",
		"components", len(components),
		"request_mappings", len(requests.Routes()),
		"framework_mappings", len(framework.Routes()),
	)
	return nil
}

// scan runs every configuration's directives and returns the union of
// selected components, in registry order
func (c *ApplicationContext) scan(configurations []Configuration, candidates []Component) ([]Component, error) {
	picked := make(map[string]bool)

	for _, cfg := range configurations {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		for _, scan := range cfg.Scans {
			found, err := c.scanner.Scan(scan, cfg.PackagePath, candidates)
			if err != nil {
				return nil, fmt.Errorf("configuration %s: %w", cfg.QualifiedName(), err)
			}
			c.logger.Debug("component scan",
				"configuration", cfg.QualifiedName(),
				"directive", scan.Name,
				"matched", len(found),
			)
			for _, comp := range found {
				picked[comp.QualifiedName()] = true
			}
		}
	}

	var selected []Component
	for _, comp := range candidates {
		if picked[comp.QualifiedName()] {
			selected = append(selected, comp)
		}
	}
	return selected, nil
}

func (c *ApplicationContext) bind(table *MappingTable, comp Component, instance any) error {
	for _, def := range comp.Mappings {
		pattern, err := ParsePattern(def.Path)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", comp.QualifiedName(), def.HandlerName, err)
		}

		handler := def.Handler
		if handler == nil {
			if def.Bind == nil {
				return fmt.Errorf("%w: %s.%s has no handler", ErrInvalidMapping, comp.QualifiedName(), def.HandlerName)
			}
			handler = def.Bind(instance)
		}

		route := RouteInfo{
			Method:        def.Method,
			Pattern:       pattern,
			HandlerName:   def.HandlerName,
			ComponentName: comp.Name(),
			QualifiedName: comp.QualifiedName(),
			Stereotype:    comp.Marker.Stereotype,
			Handler:       handler,
		}
		if err := table.Register(route); err != nil {
			return err
		}
		c.logger.Debug("mapped handler",
			"table", table.Name(),
			"method", route.Method,
			"pattern", pattern.String(),
			"handler", comp.QualifiedName()+"."+def.HandlerName,
		)
	}
	return nil
}

// Dispatcher returns the dispatcher built by Refresh
func (c *ApplicationContext) Dispatcher() (*Dispatcher, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.refreshed {
		return nil, ErrNotRefreshed
	}
	return c.dispatcher, nil
}

// Component returns the instance of the named component
func (c *ApplicationContext) Component(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	instance, ok := c.instances[name]
	return instance, ok
}

// ComponentNames returns the names of every selected component
func (c *ApplicationContext) ComponentNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[string]struct{}, len(c.components))
	for name := range c.components {
		set[name] = struct{}{}
	}
	return sortedKeys(set)
}

// RequestMappings returns the application mapping table
func (c *ApplicationContext) RequestMappings() *MappingTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requests
}

// FrameworkMappings returns the framework default mapping table
func (c *ApplicationContext) FrameworkMappings() *MappingTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.framework
}
