package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/fwmap/internal/cli"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("fwmap", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag  = flags.String("module", "", "Custom module path for imports (defaults to the go.mod module)")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete all "+models.GeneratedFileName+" files from the specified directories")
		dryRunFlag  = flags.Bool("dry-run", false, "Parse and render without writing files")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fwmap [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "fwmap Mapping Generator\n")
		fmt.Fprintf(stderr, "Scans Go packages for axon:: controller, mapping and scan annotations and\n")
		fmt.Fprintf(stderr, "writes an %s registration file into each annotated package.\n\n", models.GeneratedFileName)
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more package directories\n")
		fmt.Fprintf(stderr, "                     A path ending in /... includes every subdirectory\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fwmap ./...                                    # Generate for every package\n")
		fmt.Fprintf(stderr, "  fwmap ./internal/web                           # Generate for one package\n")
		fmt.Fprintf(stderr, "  fwmap --module org.broadleafcommerce ./core/... # Override the module path\n")
		fmt.Fprintf(stderr, "  fwmap --clean ./...                            # Delete generated files\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	dirs := flags.Args()
	if len(dirs) == 0 {
		fmt.Fprintf(stderr, "Error: at least one directory path is required\n\n")
		flags.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	if *cleanFlag {
		diagnostics.Header("cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
		for _, path := range removed {
			diagnostics.Verbose("removed %s", path)
		}
		if err != nil {
			diagnostics.Error("clean failed: %v", err)
			return 1
		}
		diagnostics.Success("removed %d generated files", len(removed))
		return 0
	}

	config := cli.Config{
		Directories: dirs,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
		DryRun:      *dryRunFlag,
	}

	diagnostics.Header("generating mappings")
	if *verboseFlag {
		diagnostics.Section("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(dirs, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		if *dryRunFlag {
			diagnostics.List("Dry run: no files will be written")
		}
	}

	generator := cli.NewGenerator(config, diagnostics)
	if err := generator.Run(); err != nil {
		diagnostics.Error("generation failed: %v", err)
		return 1
	}

	summary := generator.Summary()
	diagnostics.Summary("Generation complete", summary.Stats())

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Section("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
	return 0
}
