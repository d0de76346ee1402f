package utils

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "mkdir %s", dir)
	}
	return nil
}

// SafeWriteFile writes data to a temp file and atomically renames it into
// place, creating the parent directory when needed.
func SafeWriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "write temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return eris.Wrap(err, "atomic rename")
	}
	return nil
}
