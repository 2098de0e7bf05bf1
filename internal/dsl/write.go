package dsl

import (
	"os"
	"path/filepath"
)

// WriteFile writes the document atomically: the bytes land in a temporary
// file beside the destination which is then renamed over it, so a failed run
// never leaves a partial document behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
