package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_FindPDFs(t *testing.T) {
	tempDir := t.TempDir()

	write := func(rel string, data []byte) {
		path := filepath.Join(tempDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	write("b.pdf", []byte("%PDF-1.4"))
	write("a.PDF", []byte("%PDF-1.4"))
	write("notes.txt", []byte("text"))
	write("empty.pdf", nil)
	write("nested/c.pdf", []byte("%PDF-1.4"))

	search := NewSearch(1024)

	t.Run("top level only", func(t *testing.T) {
		files, err := search.FindPDFs(tempDir, false)
		require.NoError(t, err)

		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"a.PDF", "b.pdf"}, names)
	})

	t.Run("recursive", func(t *testing.T) {
		files, err := search.FindPDFs(tempDir, true)
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, "c.pdf", files[2].Name)
		assert.Equal(t, filepath.Join(tempDir, "nested", "c.pdf"), files[2].Path)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := search.FindPDFs("", false)
		assert.Error(t, err)

		_, err = search.FindPDFs(filepath.Join(tempDir, "missing"), false)
		assert.ErrorContains(t, err, "does not exist")

		_, err = search.FindPDFs(filepath.Join(tempDir, "b.pdf"), false)
		assert.ErrorContains(t, err, "not a directory")
	})
}
