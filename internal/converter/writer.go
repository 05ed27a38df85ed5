package converter

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteRule writes the converted rule text to path, creating any
// missing parent directories. An existing file is overwritten.
func WriteRule(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error writing file %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("error writing file %s: %w", path, err)
	}

	return nil
}
