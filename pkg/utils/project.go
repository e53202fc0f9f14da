package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// GetProjectOrganization extracts the organization from the nearest
// build.sbt above the given path, e.g. `organization := "com.acme"`.
// Returns the empty string when no build definition is found.
func GetProjectOrganization(filePath string) string {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return ""
	}

	dir := absPath
	for i := 0; i < 20; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent

		buildPath := filepath.Join(dir, "build.sbt")
		content, err := os.ReadFile(buildPath)
		if err != nil {
			continue
		}
		if org := parseOrganization(string(content)); org != "" {
			return org
		}
	}
	return ""
}

func parseOrganization(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "organization") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "organization"))
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":="))
		rest = strings.Trim(rest, `"`)
		if rest != "" {
			return rest
		}
	}
	return ""
}
