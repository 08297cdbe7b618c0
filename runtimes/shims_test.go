package runtimes

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "unix absolute path", path: "/home/elf/aoc/part1.ts", want: "file:///home/elf/aoc/part1.ts"},
		{name: "windows volume path", path: "C:/aoc/2024/part1.ts", want: "file:///C:/aoc/2024/part1.ts"},
		{name: "spaces are escaped", path: "/tmp/my aoc/part1.ts", want: "file:///tmp/my%20aoc/part1.ts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fileURL(tt.path))
		})
	}
}

func TestModuleSpecifierIsQuotedAbsoluteURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part1.ts")

	got := moduleSpecifier(path)

	assert.Equal(t, `"`+fileURL(filepath.ToSlash(path))+`"`, got)
	assert.Contains(t, got, `"file:///`)
}
