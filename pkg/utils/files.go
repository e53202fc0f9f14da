package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// IsScalaFile checks if a file is a Scala source file
func IsScalaFile(filename string) bool {
	return strings.HasSuffix(filename, ".scala") || strings.HasSuffix(filename, ".sc")
}

// FindScalaFiles recursively finds all Scala source files in a directory
func FindScalaFiles(root string) ([]string, error) {
	var scalaFiles []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip build output and hidden directories (but not the root directory)
		if info.IsDir() && path != root {
			name := filepath.Base(path)
			if name == "target" || name == ".git" || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && IsScalaFile(filepath.Base(path)) {
			scalaFiles = append(scalaFiles, path)
		}

		return nil
	})

	return scalaFiles, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
