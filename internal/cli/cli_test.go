package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/utils"
)

const defaultsSource = `package web

//axon::framework_controller
type DefaultPageController struct{}

//axon::framework_mapping GET /help
func (c *DefaultPageController) Help() (string, error) { return "default help", nil }

//axon::enable_all_framework_controllers
type FrameworkConfig struct{}
`

const shopSource = `package shop

import "github.com/toyz/fwmap/pkg/fwmap"

//axon::controller
type PageController struct{}

//axon::route GET /help
func (c *PageController) Help(ctx fwmap.RequestContext) (string, error) { return "shop help", nil }

//axon::component_scan
type AppConfig struct{}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newModule lays out a module with a framework package and an application package
func newModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/store\n\ngo 1.25\n")
	writeFile(t, filepath.Join(root, "framework", "web", "web.go"), defaultsSource)
	writeFile(t, filepath.Join(root, "shop", "shop.go"), shopSource)
	writeFile(t, filepath.Join(root, "plain", "plain.go"), "package plain\n")
	return root
}

func quiet() *utils.DiagnosticSystem {
	d := utils.NewQuietDiagnostics()
	var buf bytes.Buffer
	d.SetOutput(&buf, &buf)
	return d
}

func TestModuleResolver_ImportPath(t *testing.T) {
	root := newModule(t)

	resolver := NewModuleResolver("")
	path, err := resolver.ImportPath(filepath.Join(root, "framework", "web"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/store/framework/web", path)

	path, err = resolver.ImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/store", path)
}

func TestModuleResolver_CustomModule(t *testing.T) {
	root := newModule(t)

	path, err := NewModuleResolver("org.broadleafcommerce").ImportPath(filepath.Join(root, "framework", "web"))
	require.NoError(t, err)
	assert.Equal(t, "org.broadleafcommerce/framework/web", path)
}

func TestModuleResolver_NoGoMod(t *testing.T) {
	_, err := NewModuleResolver("").ImportPath(t.TempDir())
	require.Error(t, err)

	var genErr errors.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.ModuleErrorCode, genErr.ErrorCode())
}

func TestGenerator_Run(t *testing.T) {
	root := newModule(t)
	stale := filepath.Join(root, "plain", models.GeneratedFileName)
	writeFile(t, stale, "package plain\n")

	g := NewGenerator(Config{Directories: []string{root + "/..."}}, quiet())
	require.NoError(t, g.Run())

	summary := g.Summary()
	assert.Equal(t, 3, summary.PackagesProcessed)
	assert.Equal(t, 1, summary.ControllersFound)
	assert.Equal(t, 1, summary.FrameworkFound)
	assert.Equal(t, 2, summary.MappingsFound)
	assert.Equal(t, 2, summary.ConfigurationsFound)
	assert.Len(t, summary.GeneratedFiles, 2)
	assert.Equal(t, []string{stale}, summary.RemovedFiles)
	assert.NoFileExists(t, stale)

	web, err := os.ReadFile(filepath.Join(root, "framework", "web", models.GeneratedFileName))
	require.NoError(t, err)
	assert.Contains(t, string(web), `PackagePath: "example.com/store/framework/web"`)
	assert.Contains(t, string(web), "fwmap.EnableAllFrameworkControllers()")

	shop, err := os.ReadFile(filepath.Join(root, "shop", models.GeneratedFileName))
	require.NoError(t, err)
	assert.Contains(t, string(shop), "fwmap.BindContext(i.(*PageController).Help)")
	assert.Contains(t, string(shop), `{Name: "component_scan", UseDefaultFilters: true}`)
}

func TestGenerator_RunIsRepeatable(t *testing.T) {
	root := newModule(t)
	config := Config{Directories: []string{root + "/..."}}

	require.NoError(t, NewGenerator(config, quiet()).Run())
	first, err := os.ReadFile(filepath.Join(root, "shop", models.GeneratedFileName))
	require.NoError(t, err)

	require.NoError(t, NewGenerator(config, quiet()).Run())
	second, err := os.ReadFile(filepath.Join(root, "shop", models.GeneratedFileName))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestGenerator_DryRun(t *testing.T) {
	root := newModule(t)

	g := NewGenerator(Config{Directories: []string{root + "/..."}, DryRun: true}, quiet())
	require.NoError(t, g.Run())
	assert.Len(t, g.Summary().GeneratedFiles, 2)
	assert.NoFileExists(t, filepath.Join(root, "shop", models.GeneratedFileName))
}

func TestGenerator_ErrorsWriteNothing(t *testing.T) {
	root := newModule(t)
	writeFile(t, filepath.Join(root, "broken", "broken.go"), `package broken

//axon::enable_all_framework_controllers
//axon::component_scan
type Config struct{}
`)

	err := NewGenerator(Config{Directories: []string{root + "/..."}}, quiet()).Run()
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.True(t, multi.HasCode(errors.CompositionErrorCode))
	assert.NoFileExists(t, filepath.Join(root, "shop", models.GeneratedFileName))
}

func TestGenerator_NoPackages(t *testing.T) {
	err := NewGenerator(Config{Directories: []string{t.TempDir()}}, quiet()).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Go packages found")
}

func TestCleaner(t *testing.T) {
	root := newModule(t)
	require.NoError(t, NewGenerator(Config{Directories: []string{root + "/..."}}, quiet()).Run())

	removed, err := NewCleaner().CleanGeneratedFiles([]string{root + "/..."})
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.NoFileExists(t, filepath.Join(root, "shop", models.GeneratedFileName))

	removed, err = NewCleaner().CleanGeneratedFiles([]string{root + "/..."})
	require.NoError(t, err)
	assert.Empty(t, removed)
}
