package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/internal/utils"
)

// Cleaner removes generated files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes every generated mappings file below the given
// directory arguments and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	dirs, err := utils.ExpandDirectories(directories)
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", strings.Join(directories, ", "), err)
	}

	var removed []string
	for _, dir := range dirs {
		ok, err := c.clean(dir)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, filepath.Join(dir, models.GeneratedFileName))
		}
	}
	return removed, nil
}

// clean removes the generated file of one directory if present
func (c *Cleaner) clean(dir string) (bool, error) {
	file := filepath.Join(dir, models.GeneratedFileName)
	err := os.Remove(file)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.WrapFileSystemError("remove", file, err)
	}
}
