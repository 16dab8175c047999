package fwmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_Name(t *testing.T) {
	assert.Equal(t, "foo", component("p", "PageController", FrameworkController, "foo").Name())
	assert.Equal(t, "pageController", component("p", "PageController", FrameworkController, "").Name())
	assert.Equal(t, "p.PageController", component("p", "PageController", FrameworkController, "").QualifiedName())
	assert.Equal(t, "PageController", component("", "PageController", FrameworkController, "").QualifiedName())
}

func TestComponent_Validate(t *testing.T) {
	valid := component("example.com/web", "PageController", FrameworkController, "")
	valid.Mappings = []MappingDefinition{{Method: "GET", Path: "/page", HandlerName: "Get", Handler: stringHandler("page")}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Component)
	}{
		{"no type name", func(c *Component) { c.TypeName = "" }},
		{"no stereotype", func(c *Component) { c.Marker.Stereotype = 0 }},
		{"bad method", func(c *Component) { c.Mappings[0].Method = "BREW" }},
		{"bad path", func(c *Component) { c.Mappings[0].Path = "page" }},
		{"no handler", func(c *Component) { c.Mappings[0].Handler = nil }},
		{"both handlers", func(c *Component) {
			c.Mappings[0].Bind = func(any) HandlerFunc { return stringHandler("x") }
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			c.Mappings = append([]MappingDefinition(nil), valid.Mappings...)
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestInMemoryComponentRegistry(t *testing.T) {
	registry := NewInMemoryComponentRegistry()

	require.NoError(t, registry.RegisterComponent(component("b.example/web", "Second", Controller, "")))
	require.NoError(t, registry.RegisterComponent(component("a.example/web", "First", FrameworkController, "")))

	err := registry.RegisterComponent(component("a.example/web", "First", FrameworkController, ""))
	assert.True(t, errors.Is(err, ErrDuplicateComponent))

	assert.Equal(t, []string{"a.example/web.First", "b.example/web.Second"}, qualifiedNames(registry.Components()))

	require.NoError(t, registry.RegisterConfiguration(Configuration{PackagePath: "a.example", TypeName: "Config", Scans: []ComponentScan{EnableAllFrameworkControllers()}}))
	assert.Error(t, registry.RegisterConfiguration(Configuration{PackagePath: "a.example", TypeName: "Config"}))

	err = registry.RegisterConfiguration(Configuration{
		PackagePath: "a.example",
		TypeName:    "Combined",
		Scans:       []ComponentScan{EnableFrameworkControllers(), EnableFrameworkRestControllers()},
	})
	assert.True(t, errors.Is(err, ErrScanComposition))
	assert.Len(t, registry.Configurations(), 1)
}

func TestRegisterComponent_PanicsOnInvalid(t *testing.T) {
	saved := DefaultComponentRegistry
	DefaultComponentRegistry = NewInMemoryComponentRegistry()
	defer func() { DefaultComponentRegistry = saved }()

	assert.NotPanics(t, func() { RegisterComponent(component("p", "Valid", Controller, "")) })
	assert.Panics(t, func() { RegisterComponent(component("p", "Valid", Controller, "")) })
	assert.Panics(t, func() {
		RegisterConfiguration(Configuration{TypeName: "Bad", Scans: []ComponentScan{{Name: "a"}, {Name: "b"}}})
	})
}
