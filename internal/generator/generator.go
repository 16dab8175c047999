package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/templates"
	"github.com/toyz/fwmap/pkg/fwmap"
)

// Generator renders registration files for annotated packages
type Generator struct {
	options *imports.Options
}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{
		options: &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		},
	}
}

// Generate renders and formats the registration file of one package.
// importPath is the package's import path, recorded as the PackagePath of
// every component and configuration.
func (g *Generator) Generate(metadata *models.PackageMetadata, importPath string) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if metadata.IsEmpty() {
		return nil, fmt.Errorf("package %s has no fwmap annotations", metadata.PackageName)
	}
	if err := validate(metadata); err != nil {
		return nil, err
	}

	filePath := filepath.Join(metadata.PackagePath, models.GeneratedFileName)

	content, err := templates.RenderMappings(metadata, importPath)
	if err != nil {
		return nil, errors.WrapGenerateError(filePath, err)
	}

	formatted, err := imports.Process(filePath, []byte(content), g.options)
	if err != nil {
		return nil, errors.WrapGenerateError(filePath, err).WithContext("source", content)
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		ImportPath:  importPath,
		FilePath:    filePath,
		Content:     string(formatted),
	}, nil
}

// Write writes a generated file to disk
func (g *Generator) Write(file *models.GeneratedFile) error {
	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0644); err != nil {
		return errors.WrapFileSystemError("write", file.FilePath, err)
	}
	return nil
}

// validate rejects metadata the runtime would refuse at startup
func validate(metadata *models.PackageMetadata) error {
	problems := errors.NewMultipleErrors()

	for _, c := range metadata.Components {
		loc := errors.SourceLocation{File: c.FileName, Line: c.Line}
		if _, err := fwmap.ParseStereotype(c.Stereotype); err != nil {
			problems.Add(errors.ValidationError(loc, fmt.Sprintf("%s: %v", c.TypeName, err)))
		}
		for _, m := range c.Mappings {
			if m.Signature == models.SignatureUnsupported {
				problems.Add(errors.ValidationError(errors.SourceLocation{File: m.FileName, Line: m.Line},
					fmt.Sprintf("handler %s.%s has an unsupported signature", c.TypeName, m.HandlerName)))
			}
		}
	}

	for _, cfg := range metadata.Configurations {
		loc := errors.SourceLocation{File: cfg.FileName, Line: cfg.Line}
		for _, name := range cfg.Scan.Include {
			if _, err := fwmap.ParseStereotype(name); err != nil {
				problems.Add(errors.ValidationError(loc, fmt.Sprintf("%s: %v", cfg.TypeName, err)))
			}
		}
		for _, expr := range cfg.Scan.Exclude {
			if _, err := fwmap.NewRegexFilter(expr); err != nil {
				problems.Add(errors.ValidationError(loc, fmt.Sprintf("%s: %v", cfg.TypeName, err)))
			}
		}
	}

	return problems.ErrOrNil()
}
