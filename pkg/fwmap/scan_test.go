package fwmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func component(pkg, typeName string, s Stereotype, value string) Component {
	return Component{PackagePath: pkg, TypeName: typeName, Marker: Marker{Stereotype: s, Value: value}}
}

func qualifiedNames(components []Component) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.QualifiedName()
	}
	return names
}

func TestEnableAllFrameworkControllers_Metadata(t *testing.T) {
	scan := EnableAllFrameworkControllers()

	assert.Equal(t, []string{"org.broadleafcommerce", "com.broadleafcommerce"}, scan.BasePackages)
	assert.Len(t, scan.BasePackages, 2)
	assert.False(t, scan.UseDefaultFilters)
	assert.Empty(t, scan.ExcludeFilters)

	require.Len(t, scan.IncludeFilters, 1)
	filter, ok := scan.IncludeFilters[0].(AnnotationFilter)
	require.True(t, ok)
	assert.Equal(t, []Stereotype{FrameworkController, FrameworkRestController}, filter.Stereotypes)

	info := scan.Info()
	assert.Equal(t, RetentionRuntime, info.Retention)
	assert.Equal(t, TargetType, info.Target)
	assert.Equal(t, "false", info.Attributes["useDefaultFilters"])
	assert.Equal(t, "org.broadleafcommerce,com.broadleafcommerce", info.Attributes["basePackages"])
}

func TestEnableAllFrameworkControllers_ReturnsFreshSlices(t *testing.T) {
	first := EnableAllFrameworkControllers()
	first.BasePackages[0] = "example.com/changed"

	assert.Equal(t, FrameworkBasePackageOrg, EnableAllFrameworkControllers().BasePackages[0])
}

func TestMarkerInfo(t *testing.T) {
	for _, s := range []Stereotype{FrameworkController, FrameworkRestController} {
		info := MarkerInfo(s)
		assert.Equal(t, s.String(), info.Name)
		assert.Equal(t, RetentionRuntime, info.Retention)
		assert.Equal(t, TargetType, info.Target)
		value, ok := info.Attributes["value"]
		assert.True(t, ok)
		assert.Equal(t, "", value)
	}
}

func TestScanner_Scan_EnableAll(t *testing.T) {
	candidates := []Component{
		component("org.broadleafcommerce/cms/web", "PageController", FrameworkController, "foo"),
		component("com.broadleafcommerce/rest/api", "CatalogEndpoint", FrameworkRestController, ""),
		component("org.broadleafcommerce/core/web", "PlainType", 0, ""),
		component("org.broadleafcommerce/core/web", "AppController", Controller, ""),
		component("example.com/shop/web", "ShopDefaultController", FrameworkController, ""),
		component("org.broadleafcommercex/web", "LookalikeController", FrameworkController, ""),
	}

	found, err := NewScanner().Scan(EnableAllFrameworkControllers(), "", candidates)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"org.broadleafcommerce/cms/web.PageController",
		"com.broadleafcommerce/rest/api.CatalogEndpoint",
	}, qualifiedNames(found))
	assert.Equal(t, "foo", found[0].Name())
	assert.Equal(t, "catalogEndpoint", found[1].Name())
}

func TestScanner_Scan_SplitDirectives(t *testing.T) {
	candidates := []Component{
		component("org.broadleafcommerce/web", "PageController", FrameworkController, ""),
		component("org.broadleafcommerce/web", "PageEndpoint", FrameworkRestController, ""),
	}

	controllers, err := NewScanner().Scan(EnableFrameworkControllers(), "", candidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.broadleafcommerce/web.PageController"}, qualifiedNames(controllers))

	rest, err := NewScanner().Scan(EnableFrameworkRestControllers(), "", candidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.broadleafcommerce/web.PageEndpoint"}, qualifiedNames(rest))
}

func TestScanner_Scan_ExcludeFilters(t *testing.T) {
	candidates := []Component{
		component("org.broadleafcommerce/web", "PageController", FrameworkController, ""),
		component("org.broadleafcommerce/web", "SearchController", FrameworkController, ""),
	}

	scan := EnableFrameworkControllers(WithExcludeFilters(NameFilter{Names: []string{"searchController"}}))
	found, err := NewScanner().Scan(scan, "", candidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.broadleafcommerce/web.PageController"}, qualifiedNames(found))
}

func TestScanner_Scan_DefaultFilters(t *testing.T) {
	candidates := []Component{
		component("example.com/shop/web", "CartController", Controller, ""),
		component("example.com/shop/web", "CartEndpoint", RestController, ""),
		component("example.com/shop/web", "DefaultCartController", FrameworkController, ""),
		component("example.com/shop/web", "Helper", 0, ""),
	}

	scan := ComponentScan{Name: "component_scan", UseDefaultFilters: true}
	found, err := NewScanner().Scan(scan, "example.com/shop", candidates)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"example.com/shop/web.CartController",
		"example.com/shop/web.CartEndpoint",
	}, qualifiedNames(found))
}

func TestScanner_Scan_NoBasePackages(t *testing.T) {
	scan := ComponentScan{Name: "component_scan", UseDefaultFilters: true}
	_, err := NewScanner().Scan(scan, "", nil)
	assert.True(t, errors.Is(err, ErrNoBasePackages))
}

func TestScanner_Scan_WithBasePackages(t *testing.T) {
	candidates := []Component{
		component("example.com/defaults/web", "PageController", FrameworkController, ""),
		component("org.broadleafcommerce/web", "OtherController", FrameworkController, ""),
	}

	found, err := NewScanner().Scan(EnableFrameworkControllers(WithBasePackages("example.com/defaults")), "", candidates)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com/defaults/web.PageController"}, qualifiedNames(found))
}

func TestConfiguration_Validate(t *testing.T) {
	single := Configuration{PackagePath: "example.com/app", TypeName: "Config", Scans: []ComponentScan{EnableAllFrameworkControllers()}}
	assert.NoError(t, single.Validate())

	empty := Configuration{PackagePath: "example.com/app", TypeName: "Empty"}
	assert.NoError(t, empty.Validate())

	combined := Configuration{
		PackagePath: "example.com/app",
		TypeName:    "Config",
		Scans: []ComponentScan{
			EnableAllFrameworkControllers(),
			{Name: "component_scan", UseDefaultFilters: true},
		},
	}
	err := combined.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScanComposition))
	assert.Contains(t, err.Error(), "enable_all_framework_controllers and component_scan")
	assert.Contains(t, err.Error(), "example.com/app.Config")
}
