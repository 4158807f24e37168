package testutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{
		"a.txt":         "hello",
		"docs/guide.md": "# guide",
	})
	assert.Equal(t, "hello", ReadFile(t, filepath.Join(dir, "a.txt")))
	assert.Equal(t, "# guide", ReadFile(t, filepath.Join(dir, "docs", "guide.md")))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", StripANSI("\x1b[1;31mplain\x1b[0m"))
	assert.Equal(t, "none", StripANSI("none"))
}
