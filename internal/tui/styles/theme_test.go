package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPalette(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		p, err := LoadPalette("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPalette(), p)
	})

	t.Run("partial file merges over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.yaml")
		require.NoError(t, os.WriteFile(path, []byte("primary: \"#112233\"\nerror: \"196\"\n"), 0644))

		p, err := LoadPalette(path)
		require.NoError(t, err)
		assert.Equal(t, "#112233", p.Primary)
		assert.Equal(t, "196", p.Error)
		assert.Equal(t, DefaultPalette().Text, p.Text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPalette(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.yaml")
		require.NoError(t, os.WriteFile(path, []byte("primary: [\n"), 0644))
		_, err := LoadPalette(path)
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { Theme = New(DefaultPalette()) })

	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accent: \"#000000\"\n"), 0644))

	require.NoError(t, Apply(path))
	assert.Equal(t, "#000000", Theme.Palette.Accent)

	assert.Error(t, Apply(filepath.Join(t.TempDir(), "gone.yaml")))
	assert.Equal(t, DefaultPalette(), Theme.Palette)
}
