package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// openStdioLog opens path for appending, creating its directory if needed.
func openStdioLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("stdio log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stdio log: %w", err)
	}
	return f, nil
}
