package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-stamp-checker/internal/pdf/pdftest"
)

func TestStats_GetDirectoryStats(t *testing.T) {
	dir := t.TempDir()
	small := pdftest.Build("one")
	large := pdftest.Build("first page", "second page", "third page")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), small, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), large, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pdf"), []byte("%PDF-1.4 broken"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	stats, err := NewStats(1024 * 1024).GetDirectoryStats(dir, false)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 4, stats.TotalPages)
	assert.Equal(t, 1, stats.Unreadable)
	assert.Equal(t, "b.pdf", stats.LargestFileName)
	assert.Equal(t, "c.pdf", stats.SmallestFileName)
	assert.Equal(t, stats.TotalSize/3, stats.AverageFileSize)

	require.Len(t, stats.Files, 3)
	assert.Equal(t, 1, stats.Files[0].Pages)
	assert.Equal(t, 3, stats.Files[1].Pages)
	assert.NotEmpty(t, stats.Files[2].Error)
}

func TestStats_EmptyDirectory(t *testing.T) {
	stats, err := NewStats(1024).GetDirectoryStats(t.TempDir(), true)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalFiles)
	assert.Zero(t, stats.AverageFileSize)
	assert.Empty(t, stats.SmallestFileName)
}

func TestStats_MissingDirectory(t *testing.T) {
	_, err := NewStats(1024).GetDirectoryStats(filepath.Join(t.TempDir(), "missing"), false)
	assert.Error(t, err)
}
