package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetProjectOrganization(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	src := filepath.Join(root, "src", "main", "scala")
	req.NoError(os.MkdirAll(src, 0755))

	build := `name := "demo"

organization := "com.acme"

scalaVersion := "2.13.12"
`
	req.NoError(os.WriteFile(filepath.Join(root, "build.sbt"), []byte(build), 0644))
	file := filepath.Join(src, "Main.scala")
	req.NoError(os.WriteFile(file, []byte("object Main\n"), 0644))

	req.Equal("com.acme", GetProjectOrganization(file))
}

func TestGetProjectOrganization_NoBuildFile(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "Main.scala")
	req.NoError(os.WriteFile(file, []byte("object Main\n"), 0644))

	req.Equal("", GetProjectOrganization(file))
}

func TestParseOrganization(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"plain", `organization := "io.example"`, "io.example"},
		{"indented", "  organization := \"io.example\"\n", "io.example"},
		{"missing", `name := "demo"`, ""},
		{"empty value", `organization := ""`, ""},
	}
	for _, tt := range tests {
		req.Equal(tt.expected, parseOrganization(tt.content), tt.name)
	}
}
