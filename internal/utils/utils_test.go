package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExpandDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "web", "page.go"), "package web\n")
	writeFile(t, filepath.Join(root, "web", "admin", "admin.go"), "package admin\n")
	writeFile(t, filepath.Join(root, "onlytests", "x_test.go"), "package onlytests\n")
	writeFile(t, filepath.Join(root, "vendor", "dep", "dep.go"), "package dep\n")
	writeFile(t, filepath.Join(root, ".hidden", "h.go"), "package hidden\n")
	writeFile(t, filepath.Join(root, "testdata", "td.go"), "package td\n")

	t.Run("recursive", func(t *testing.T) {
		dirs, err := ExpandDirectories([]string{root + "/..."})
		require.NoError(t, err)
		assert.Equal(t, []string{
			root,
			filepath.Join(root, "web"),
			filepath.Join(root, "web", "admin"),
		}, dirs)
	})

	t.Run("single directory", func(t *testing.T) {
		dirs, err := ExpandDirectories([]string{filepath.Join(root, "web")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "web")}, dirs)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		dirs, err := ExpandDirectories([]string{filepath.Join(root, "web"), filepath.Join(root, "web") + "/..."})
		require.NoError(t, err)
		assert.Len(t, dirs, 2)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := ExpandDirectories([]string{filepath.Join(root, "missing")})
		assert.Error(t, err)
	})
}

func TestSkipDirectory(t *testing.T) {
	for _, name := range []string{".git", "_examples", "vendor", "testdata", "node_modules"} {
		assert.True(t, SkipDirectory(name), name)
	}
	assert.False(t, SkipDirectory("internal"))
}

func TestGoMod(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/shop\n\ngo 1.25\n")
	nested := filepath.Join(root, "internal", "web")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path, err := FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "go.mod"), path)

	name, err := ParseModuleName(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop", name)
}

func TestParseModuleName_Invalid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "go 1.25\n")

	_, err := ParseModuleName(filepath.Join(root, "go.mod"))
	assert.Error(t, err)

	_, err = ParseModuleName(filepath.Join(root, "missing", "go.mod"))
	assert.Error(t, err)
}

func TestDiagnosticLevels(t *testing.T) {
	var out, errOut bytes.Buffer

	d := NewQuietDiagnostics()
	d.SetOutput(&out, &errOut)
	d.Info("hidden")
	d.Error("broken %d", 1)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "broken 1")

	out.Reset()
	d = NewDiagnosticSystem(DiagnosticInfo)
	d.SetOutput(&out, &errOut)
	d.Verbose("hidden")
	d.Item("parsed %s", "web")
	d.Summary("Done", map[string]int{"b": 2, "a": 1})
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "parsed web")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("a: 1")), bytes.Index(out.Bytes(), []byte("b: 2")))
}
