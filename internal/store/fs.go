package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
)

// writeFileAtomic writes data to path by writing to a temp file obtained
// from fs.TempFile and renaming it into place, so a crash mid-write never leaves a partial
// record behind. This is the one place the object store touches the
// filesystem directly for writes; every record write in this package goes
// through it.
func writeFileAtomic(fs billy.Filesystem, path string, data []byte) error {
	tmp, err := fs.TempFile("", "rit-obj-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to install %s: %w", path, err)
	}
	return nil
}

// readFile reads the full contents of path, or returns os.ErrNotExist
// (wrapped) if it is absent.
func readFile(fs billy.Filesystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func writeJSONAtomic(fs billy.Filesystem, path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	return writeFileAtomic(fs, path, data)
}

func readJSON(fs billy.Filesystem, path string, v interface{}) error {
	data, err := readFile(fs, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func isNotExist(err error) bool {
	return err != nil && os.IsNotExist(err)
}
