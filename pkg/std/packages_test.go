package std

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRootNamespace(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name      string
		qualifier string
		expected  bool
	}{
		{"scala package", "scala", true},
		{"scala subpackage", "scala.collection.mutable", true},
		{"java subpackage", "java.util", true},
		{"javax", "javax.annotation", true},
		{"root anchored", "_root_.scala.util", true},
		{"root anchored user package", "_root_.com.acme", false},
		{"user package", "com.acme.service", false},
		{"empty string", "", false},
		{"single user segment", "acme", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, IsRootNamespace(tt.qualifier), "IsRootNamespace(%q)", tt.qualifier)
		})
	}
}

func TestIsDefaultImported(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name      string
		qualifier string
		expected  bool
	}{
		{"java.lang", "java.lang", true},
		{"scala", "scala", true},
		{"scala.Predef", "scala.Predef", true},
		{"scala.collection", "scala.collection", false},
		{"java.util", "java.util", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, IsDefaultImported(tt.qualifier), "IsDefaultImported(%q)", tt.qualifier)
		})
	}
}

func TestDefaultVisibleNamesNotEmpty(t *testing.T) {
	req := require.New(t)
	req.NotEmpty(DefaultVisibleNames, "DefaultVisibleNames map should not be empty")

	expectedNames := []string{"String", "List", "Option", "println", "Map"}
	for _, name := range expectedNames {
		req.True(IsDefaultVisible(name), "Expected default-visible name %q not found", name)
	}
}
