package curation

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteList serializes a named list: one token per line, UTF-8, in list
// order, replacing any existing file at path. The content lands via a
// temporary file and rename so a failed run never leaves a partial list.
func WriteList(path string, tokens []string) error {
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	for _, token := range tokens {
		if _, err := fmt.Fprintln(file, token); err != nil {
			file.Close()
			os.Remove(tmp)
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}

	return os.Rename(tmp, path)
}
