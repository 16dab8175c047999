package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/parser"
)

const frameworkSource = `package web

import "github.com/toyz/fwmap/pkg/fwmap"

//axon::framework_rest_controller
type DefaultController struct{}

//axon::framework_mapping GET /overridden-get
func (c *DefaultController) OverriddenGet() (string, error) {
	return "default", nil
}

//axon::framework_mapping GET /users/{id:int}
func (c *DefaultController) User(ctx fwmap.RequestContext) (map[string]string, error) {
	return map[string]string{"id": ctx.Param("id")}, nil
}

//axon::framework_mapping DELETE /users/{id:int}
func (c *DefaultController) Delete(ctx fwmap.RequestContext) error {
	return ctx.Response().NoContent(204)
}

//axon::enable_all_framework_controllers
type FrameworkConfig struct{}
`

func TestGenerate_NilMetadata(t *testing.T) {
	_, err := NewGenerator().Generate(nil, "example.com/app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata cannot be nil")
}

func TestGenerate_EmptyPackage(t *testing.T) {
	metadata := &models.PackageMetadata{PackageName: "empty", PackagePath: "./empty"}

	_, err := NewGenerator().Generate(metadata, "example.com/app/empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fwmap annotations")
}

func TestGenerate_FromParsedSource(t *testing.T) {
	metadata, err := parser.NewParser().ParseSource("web.go", frameworkSource)
	require.NoError(t, err)
	metadata.PackagePath = "./web"

	file, err := NewGenerator().Generate(metadata, "org.broadleafcommerce/web")
	require.NoError(t, err)

	assert.Equal(t, "web", file.PackageName)
	assert.Equal(t, filepath.Join("./web", models.GeneratedFileName), file.FilePath)
	assert.Contains(t, file.Content, "// Code generated by fwmap. DO NOT EDIT.")
	assert.Contains(t, file.Content, `PackagePath: "org.broadleafcommerce/web"`)
	assert.Contains(t, file.Content, "fwmap.Marker{Stereotype: fwmap.FrameworkRestController}")
	assert.Contains(t, file.Content, "return fwmap.Bind(i.(*DefaultController).OverriddenGet)")
	assert.Contains(t, file.Content, "return fwmap.BindContext(i.(*DefaultController).User)")
	assert.Contains(t, file.Content, "return i.(*DefaultController).Delete")
	assert.Contains(t, file.Content, "fwmap.EnableAllFrameworkControllers()")
}

func TestGenerate_RejectsUnknownStereotype(t *testing.T) {
	metadata := &models.PackageMetadata{
		PackageName: "web",
		Components:  []models.ComponentMetadata{{TypeName: "Broken", Stereotype: "service"}},
	}

	_, err := NewGenerator().Generate(metadata, "example.com/web")
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.True(t, multi.HasCode(errors.ValidationErrorCode))
}

func TestGenerate_RejectsBadExclude(t *testing.T) {
	metadata := &models.PackageMetadata{
		PackageName: "web",
		Configurations: []models.ConfigurationMetadata{
			{TypeName: "Config", Scan: models.ScanMetadata{Directive: "enable_framework_controllers", Exclude: []string{"("}}},
		},
	}

	_, err := NewGenerator().Generate(metadata, "example.com/web")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	file := &models.GeneratedFile{
		FilePath: filepath.Join(dir, models.GeneratedFileName),
		Content:  "package web\n",
	}

	require.NoError(t, NewGenerator().Write(file))

	data, err := os.ReadFile(file.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "package web\n", string(data))
}

func TestWrite_MissingDirectory(t *testing.T) {
	file := &models.GeneratedFile{
		FilePath: filepath.Join(t.TempDir(), "missing", models.GeneratedFileName),
		Content:  "package web\n",
	}

	err := NewGenerator().Write(file)
	require.Error(t, err)

	var genErr errors.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, errors.FileSystemErrorCode, genErr.ErrorCode())
}
