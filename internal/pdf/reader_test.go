package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-stamp-checker/internal/pdf/pdftest"
)

func TestNewReader(t *testing.T) {
	tests := []struct {
		name        string
		maxFileSize int64
	}{
		{name: "standard max file size", maxFileSize: 100 * 1024 * 1024},
		{name: "small max file size", maxFileSize: 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewReader(tt.maxFileSize)
			assert.Equal(t, tt.maxFileSize, got.maxFileSize)
			assert.Equal(t, 10*1024*1024, got.maxTextSize)
			require.NotNil(t, got.validator)
		})
	}
}

func TestReader_ReadPages(t *testing.T) {
	reader := NewReader(1024 * 1024)
	data := pdftest.Build("PROJECT PRJ-ECX-01\nRodrigo Souza", "CREA 12345")

	pages, err := reader.ReadPages(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "PRJ-ECX-01")
	assert.Contains(t, pages[0], "Rodrigo Souza")
	assert.Contains(t, pages[1], "CREA 12345")
}

func TestReader_ReadPagesEmptyPage(t *testing.T) {
	reader := NewReader(1024 * 1024)

	pages, err := reader.ReadPages(context.Background(), pdftest.Build("cover", ""))
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "cover")
	assert.Empty(t, pages[1])
}

func TestReader_ReadPagesRejectsInvalidInput(t *testing.T) {
	reader := NewReader(1024)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrEmptyFile},
		{name: "no header", data: []byte("this is not a pdf"), wantErr: ErrInvalidHeader},
		{name: "too large", data: make([]byte, 2048), wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := reader.ReadPages(context.Background(), tt.data)
			assert.Nil(t, pages)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReader_ReadPagesCorruptBody(t *testing.T) {
	reader := NewReader(1024 * 1024)

	_, err := reader.ReadPages(context.Background(), []byte("%PDF-1.4\ngarbage without objects\n%%EOF\n"))
	require.Error(t, err)

	var pdfErr *Error
	assert.True(t, errors.As(err, &pdfErr), "expected *pdf.Error, got %T", err)
}

func TestReader_ReadPagesCanceled(t *testing.T) {
	reader := NewReader(1024 * 1024)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.ReadPages(ctx, pdftest.Build("one"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_ReadFile(t *testing.T) {
	tempDir := t.TempDir()
	reader := NewReader(1024 * 1024)

	pdfPath := filepath.Join(tempDir, "drawing.pdf")
	require.NoError(t, os.WriteFile(pdfPath, pdftest.Build("ECX"), 0o644))

	txtPath := filepath.Join(tempDir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("text"), 0o644))

	t.Run("valid pdf", func(t *testing.T) {
		pages, err := reader.ReadFile(context.Background(), pdfPath)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Contains(t, pages[0], "ECX")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := reader.ReadFile(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := reader.ReadFile(context.Background(), filepath.Join(tempDir, "missing.pdf"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := reader.ReadFile(context.Background(), txtPath)
		assert.ErrorIs(t, err, ErrNotPDF)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := reader.ReadFile(context.Background(), tempDir)
		assert.ErrorContains(t, err, "directory")
	})
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "under limit", text: "FOLHA", limit: 10, want: "FOLHA"},
		{name: "exact limit", text: "FOLHA", limit: 5, want: "FOLHA"},
		{name: "ascii cut", text: "FOLHA", limit: 3, want: "FOL"},
		{name: "cut inside rune backs off", text: "ILUMINAÇÃO", limit: 8, want: "ILUMINA"},
		{name: "cut after rune keeps it", text: "ILUMINAÇÃO", limit: 9, want: "ILUMINAÇ"},
		{name: "zero limit", text: "Ã", limit: 0, want: ""},
		{name: "limit inside first rune", text: "Ã", limit: 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateText(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
