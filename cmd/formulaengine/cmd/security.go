package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// validateFilePath performs security checks on a batch-definition file
// path: prevents traversal attacks, requires the path to stay within
// the current working directory, restricts the extension to the
// formats `batch`/`validate` accept, and caps the file size.
func validateFilePath(path string) error {
	return validatePathWithExtensions(path, ".yaml", ".yml", ".toml")
}

// validateExpressionsFilePath performs the same checks for the plain
// one-expression-per-line files `cache stats` reads.
func validateExpressionsFilePath(path string) error {
	return validatePathWithExtensions(path, ".txt")
}

func validatePathWithExtensions(path string, allowedExt ...string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid path: path traversal detected")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	relPath, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return fmt.Errorf("invalid path: file must be within current directory")
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if !slices.Contains(allowedExt, ext) {
		return fmt.Errorf("invalid file extension: expected one of %v", allowedExt)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("invalid path: expected file, got directory")
	}

	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	return nil
}
