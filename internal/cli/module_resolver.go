package cli

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/utils"
)

// ModuleResolver maps package directories to import paths
type ModuleResolver struct {
	customModule string
	modules      map[string]string // go.mod directory -> module path
}

// NewModuleResolver creates a new module resolver. A non-empty customModule
// replaces the module path declared in go.mod.
func NewModuleResolver(customModule string) *ModuleResolver {
	return &ModuleResolver{
		customModule: customModule,
		modules:      make(map[string]string),
	}
}

// ResolveModule returns the root directory and module path containing dir
func (r *ModuleResolver) ResolveModule(dir string) (root, modulePath string, err error) {
	goMod, err := utils.FindGoModFile(dir)
	if err != nil {
		return "", "", errors.WrapModuleError(dir, err)
	}
	root = filepath.Dir(goMod)

	if cached, ok := r.modules[root]; ok {
		return root, cached, nil
	}

	modulePath = r.customModule
	if modulePath == "" {
		modulePath, err = utils.ParseModuleName(goMod)
		if err != nil {
			return "", "", errors.WrapModuleError(dir, err)
		}
	}
	r.modules[root] = modulePath
	return root, modulePath, nil
}

// ImportPath builds the full import path for a package directory
func (r *ModuleResolver) ImportPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", dir, err)
	}

	root, modulePath, err := r.ResolveModule(absDir)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, absDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.WrapModuleError(dir, fmt.Errorf("%s is outside module root %s", absDir, root))
	}

	if rel == "." {
		return modulePath, nil
	}
	return path.Join(modulePath, filepath.ToSlash(rel)), nil
}
