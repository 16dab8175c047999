package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RecursiveSuffix marks a directory argument that includes every subdirectory
const RecursiveSuffix = "/..."

// ExpandDirectories resolves directory arguments to absolute paths of
// directories containing Go files. An argument ending in /... is walked
// recursively; hidden, vendor and testdata directories are skipped.
func ExpandDirectories(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(dir string) error {
		if seen[dir] {
			return nil
		}
		ok, err := HasGoFiles(dir)
		if err != nil {
			return err
		}
		if ok {
			seen[dir] = true
			result = append(result, dir)
		}
		return nil
	}

	for _, arg := range args {
		recursive := strings.HasSuffix(arg, RecursiveSuffix) || arg == "..."
		base := strings.TrimSuffix(strings.TrimSuffix(arg, "..."), "/")
		if base == "" {
			base = "."
		}

		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, err
		}

		if !recursive {
			if err := add(abs); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != abs && SkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

// SkipDirectory reports whether a directory is never scanned
func SkipDirectory(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "testdata" || name == "node_modules"
}

// HasGoFiles reports whether dir directly contains non-test Go files
func HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}
