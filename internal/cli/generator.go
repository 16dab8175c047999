package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/generator"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/parser"
	"github.com/toyz/fwmap/internal/utils"
)

// GenerationSummary contains statistics about one run
type GenerationSummary struct {
	PackagesProcessed   int
	ControllersFound    int
	FrameworkFound      int
	MappingsFound       int
	ConfigurationsFound int
	GeneratedFiles      []string
	RemovedFiles        []string
}

// Stats returns the summary counters keyed by label
func (s GenerationSummary) Stats() map[string]int {
	return map[string]int{
		"Packages processed":    s.PackagesProcessed,
		"Files generated":       len(s.GeneratedFiles),
		"Stale files removed":   len(s.RemovedFiles),
		"Controllers found":     s.ControllersFound,
		"Framework controllers": s.FrameworkFound,
		"Mappings found":        s.MappingsFound,
		"Configurations found":  s.ConfigurationsFound,
	}
}

// Generator coordinates the CLI generation process
type Generator struct {
	config      Config
	resolver    *ModuleResolver
	parser      *parser.Parser
	generator   *generator.Generator
	cleaner     *Cleaner
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		level := utils.DiagnosticInfo
		if config.Verbose {
			level = utils.DiagnosticVerbose
		}
		diagnostics = utils.NewDiagnosticSystem(level)
	}
	return &Generator{
		config:      config,
		resolver:    NewModuleResolver(config.ModuleName),
		parser:      parser.NewParser(),
		generator:   generator.NewGenerator(),
		cleaner:     NewCleaner(),
		diagnostics: diagnostics,
	}
}

// Summary returns the statistics of the last run
func (g *Generator) Summary() GenerationSummary {
	return g.summary
}

// pending is a package whose generated file must be written or removed
type pending struct {
	dir  string
	file *models.GeneratedFile
}

// Run parses every package, renders its mappings file and writes the
// results. Nothing is written when any package has errors.
func (g *Generator) Run() error {
	start := time.Now()
	g.summary = GenerationSummary{}

	dirs, err := utils.ExpandDirectories(g.config.Directories)
	if err != nil {
		return errors.WrapFileSystemError("scan", strings.Join(g.config.Directories, ", "), err)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no Go packages found in %s", strings.Join(g.config.Directories, ", "))
	}
	g.diagnostics.Verbose("found %d package directories", len(dirs))

	problems := errors.NewMultipleErrors()
	var work []pending

	for _, dir := range dirs {
		item, err := g.processPackage(dir)
		if err != nil {
			addError(problems, err)
			continue
		}
		work = append(work, item)
	}

	if err := problems.ErrOrNil(); err != nil {
		return err
	}

	for _, item := range work {
		if err := g.apply(item); err != nil {
			return err
		}
	}

	g.diagnostics.Verbose("generation finished in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func (g *Generator) processPackage(dir string) (pending, error) {
	metadata, err := g.parser.ParseDirectory(dir)
	if err != nil {
		return pending{}, err
	}
	g.summary.PackagesProcessed++

	if metadata.IsEmpty() {
		g.diagnostics.Debug("%s: no annotations", dir)
		return pending{dir: dir}, nil
	}

	for _, c := range metadata.Components {
		if c.Framework {
			g.summary.FrameworkFound++
		} else {
			g.summary.ControllersFound++
		}
	}
	g.summary.MappingsFound += metadata.MappingCount()
	g.summary.ConfigurationsFound += len(metadata.Configurations)

	importPath, err := g.resolver.ImportPath(dir)
	if err != nil {
		return pending{}, err
	}

	file, err := g.generator.Generate(metadata, importPath)
	if err != nil {
		return pending{}, err
	}
	g.diagnostics.Item("%s: %d components, %d mappings, %d configurations",
		importPath, len(metadata.Components), metadata.MappingCount(), len(metadata.Configurations))
	return pending{dir: dir, file: file}, nil
}

// apply writes a generated file, or removes a stale one left from an
// earlier run when the package no longer has annotations
func (g *Generator) apply(item pending) error {
	if item.file == nil {
		if g.config.DryRun {
			return nil
		}
		removed, err := g.cleaner.clean(item.dir)
		if err != nil {
			return err
		}
		if removed {
			path := filepath.Join(item.dir, models.GeneratedFileName)
			g.summary.RemovedFiles = append(g.summary.RemovedFiles, path)
			g.diagnostics.Verbose("removed stale %s", path)
		}
		return nil
	}

	if !g.config.DryRun {
		if err := g.generator.Write(item.file); err != nil {
			return err
		}
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, item.file.FilePath)
	return nil
}

// addError flattens err into problems
func addError(problems *errors.MultipleErrors, err error) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, inner := range e.Errors {
			problems.Add(inner)
		}
	case errors.GeneratorError:
		problems.Add(e)
	default:
		problems.Add(errors.Wrap(errors.UnknownErrorCode, "failed to process package", err))
	}
}
