package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/totelabel/pkg/errors"
)

// collectInputs resolves the --input flag into a list of CSV files.
// The argument may be a single file, a directory (all *.csv inside it,
// sorted), or a glob pattern.
func collectInputs(path string) ([]string, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return []string{path}, nil
		}
		matches, err := filepath.Glob(filepath.Join(path, "*.csv"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to scan directory %s", path)
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeNotFound, "no CSV files found in %s", path)
		}
		return matches, nil
	}

	// Not an existing path, try it as a glob.
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid input pattern %s", path)
	}
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no input files match %s", path)
	}
	return matches, nil
}
