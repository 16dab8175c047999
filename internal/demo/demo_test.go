package demo_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/fwmap/internal/demo/app"
	"github.com/toyz/fwmap/internal/demo/framework"
	"github.com/toyz/fwmap/internal/generator"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/parser"
	"github.com/toyz/fwmap/pkg/fwmap"
	"github.com/toyz/fwmap/pkg/fwmap/adapters"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appContext := fwmap.NewApplicationContext(fwmap.WithLogger(logger))
	require.NoError(t, appContext.Refresh())

	web := adapters.NewDefaultEchoAdapter()
	_, err := fwmap.NewServer(nil, web, appContext, logger)
	require.NoError(t, err)
	return web.GetEngine()
}

func get(t *testing.T, handler http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code, rec.Body.String()
}

func TestDemo_ApplicationOverridesFramework(t *testing.T) {
	handler := newHandler(t)

	code, body := get(t, handler, "/overridden-get")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, app.CustomGetResponse, body)

	code, body = get(t, handler, "/default-only-get")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, framework.DefaultOnlyGetResponse, body)

	code, body = get(t, handler, "/custom-only-get")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, app.CustomOnlyGetResponse, body)
}

func TestDemo_FrameworkEndpoints(t *testing.T) {
	handler := newHandler(t)

	code, body := get(t, handler, "/status")
	require.Equal(t, http.StatusOK, code)
	var status framework.Status
	require.NoError(t, json.Unmarshal([]byte(body), &status))
	assert.Equal(t, "ok", status.Status)

	code, body = get(t, handler, "/static/css/site.css")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "no static asset css/site.css")

	code, body = get(t, handler, "/hello/ada")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"message":"hello ada"`)
}

// TestGeneratedFilesUpToDate regenerates the demo registrations and compares
// them with the checked-in files
func TestGeneratedFilesUpToDate(t *testing.T) {
	packages := map[string]string{
		"framework": "org.broadleafcommerce/internal/demo/framework",
		"app":       "github.com/toyz/fwmap/internal/demo/app",
	}

	for dir, importPath := range packages {
		t.Run(dir, func(t *testing.T) {
			metadata, err := parser.NewParser().ParseDirectory(dir)
			require.NoError(t, err)

			file, err := generator.NewGenerator().Generate(metadata, importPath)
			require.NoError(t, err)

			existing, err := os.ReadFile(filepath.Join(dir, models.GeneratedFileName))
			require.NoError(t, err)
			assert.Equal(t, string(existing), file.Content, "run go generate ./internal/demo/...")
		})
	}
}
