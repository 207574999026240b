package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFile creates path with content, creating parent directories. An
// existing file is never replaced: it is logged and reported as not written.
func WriteFile(logger *slog.Logger, path, content string) (bool, error) {
	dir := filepath.Dir(path)
	logger.Debug("Creating directory", "dir", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			logger.Warn("Skipping existing file", "path", path)
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", path, err)
	}

	logger.Debug("File written", "path", path)
	return true, nil
}

// FileWriter returns a WriteFunc backed by WriteFile. Slash-separated layout
// paths are converted to the platform separator.
func FileWriter(logger *slog.Logger) WriteFunc {
	return func(path, content string) (bool, error) {
		return WriteFile(logger, filepath.FromSlash(path), content)
	}
}
