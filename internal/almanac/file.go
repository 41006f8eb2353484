package almanac

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-lunar/internal/config"
)

// WriteFile writes the document to path atomically.
func WriteFile(path string, a *Almanac) error {
	data, err := a.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	return writeAtomic(path, data)
}

// ReadFile loads a previously written document.
func ReadFile(path string) (*Almanac, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAlmanacRead, err)
	}
	a := New()
	if err := a.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAlmanacDecode, err)
	}
	return a, nil
}

// writeAtomic writes to a temporary file in the target directory and renames
// it over path, so readers never observe a partial document.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	if err = tmp.Chmod(config.FilePermPublic); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrAlmanacWrite, err)
	}
	return nil
}
