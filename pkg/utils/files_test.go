package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsScalaFile(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		filename string
		expected bool
	}{
		{"Main.scala", true},
		{"script.sc", true},
		{"main.go", false},
		{"build.sbt", false},
		{"scala", false},
	}
	for _, tt := range tests {
		req.Equal(tt.expected, IsScalaFile(tt.filename), tt.filename)
	}
}

func TestFindScalaFiles(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	mkFile := func(parts ...string) {
		path := filepath.Join(append([]string{dir}, parts...)...)
		req.NoError(os.MkdirAll(filepath.Dir(path), 0755))
		req.NoError(os.WriteFile(path, []byte("// scala\n"), 0644))
	}
	mkFile("Main.scala")
	mkFile("src", "Service.scala")
	mkFile("src", "notes.md")
	mkFile("target", "Generated.scala")
	mkFile(".metals", "Hidden.scala")

	files, err := FindScalaFiles(dir)
	req.NoError(err)
	req.ElementsMatch([]string{
		filepath.Join(dir, "Main.scala"),
		filepath.Join(dir, "src", "Service.scala"),
	}, files, "build output and hidden directories are skipped")
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "Main.scala")
	req.NoError(os.WriteFile(file, nil, 0644))

	isDir, err := IsDirectory(dir)
	req.NoError(err)
	req.True(isDir)

	isDir, err = IsDirectory(file)
	req.NoError(err)
	req.False(isDir)

	_, err = IsDirectory(filepath.Join(dir, "missing"))
	req.Error(err)
}
