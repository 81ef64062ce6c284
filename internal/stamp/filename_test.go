package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSheetNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "two digit pair", input: "PRJ-ECX-IPER_02_07", want: "02 07", wantOK: true},
		{name: "hyphen separated", input: "PRJ-ECX-IPER-02-07", want: "02 07", wantOK: true},
		{name: "mixed separators", input: "PLANTA_01-12", want: "01 12", wantOK: true},
		{name: "two then three digits", input: "PRJ-HID-IPER_04_105", want: "04 105", wantOK: true},
		{name: "three digit pair", input: "PRJ-SUB-IPER_101_205", want: "101 205", wantOK: true},
		{name: "signed suffix stripped", input: "PRJ-ECX-IPER-02-07_assinado", want: "02 07", wantOK: true},
		{name: "signed suffix any case", input: "PRJ-ECX-IPER-02-07_ASSINADO", want: "02 07", wantOK: true},
		{name: "with extension", input: "PRJ-ECX-IPER-02-07.pdf", want: "02 07", wantOK: true},
		{name: "signed with extension", input: "PRJ-ECX-IPER-02-07_assinado.pdf", want: "02 07", wantOK: true},
		{name: "numbers not at the end", input: "PRJ-ECX-02-07-IPER", wantOK: false},
		{name: "no numbers", input: "memorial_descritivo", wantOK: false},
		{name: "single group", input: "PRJ-ECX-IPER-07", wantOK: false},
		{name: "four digits", input: "PRJ-ECX-IPER-2025-0007", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSheetNumber(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSheetNumber_PatternPriority(t *testing.T) {
	// A three digit group before the pair does not steal the match.
	got, ok := ExtractSheetNumber("A_112_12_34")
	assert.True(t, ok)
	assert.Equal(t, "12 34", got)
}

func TestExtractSheetNumber_DotInBaseName(t *testing.T) {
	// The second extension strip eats ".0-02-07".
	_, ok := ExtractSheetNumber("PRJ-ECX-IPER-R1.0-02-07")
	assert.False(t, ok)

	_, ok = ExtractSheetNumber("PRJ-ECX-IPER-R1.0-02-07.pdf")
	assert.False(t, ok)

	meta := ParseFileName("PRJ-ECX-IPER-R1.0-02-07.pdf", DefaultTables().Catalog)
	assert.Empty(t, meta.SheetNumber)
	assert.False(t, meta.HasSheet())
	assert.Equal(t, "PRJ-ECX-IPER-R1.0-02-07", meta.MatchName)
	assert.Equal(t, "ECX", meta.ProjectCode)
}

func TestIsSignedByName(t *testing.T) {
	assert.True(t, IsSignedByName("X_ASSINADO.pdf"))
	assert.True(t, IsSignedByName("x_assinado.pdf"))
	assert.True(t, IsSignedByName("assinado-PRJ-ECX.pdf"))
	assert.True(t, IsSignedByName("relatorio.Assinado"))
	assert.False(t, IsSignedByName("X.pdf"))
	assert.False(t, IsSignedByName(""))
}

func TestExtractProjectCode(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "PRJ-ECX-IPER-02-07.pdf", want: "ECX", wantOK: true},
		{input: "PRJ-ILUX-IPER-01-03_assinado.pdf", want: "ILUX", wantOK: true},
		{input: "2025_PRJ-SPDA-IPER.pdf", want: "SPDA", wantOK: true},
		{input: "PRJ-ecx-IPER.pdf", wantOK: false},
		{input: "PRJ-ECX.pdf", wantOK: false},
		{input: "PRJ--IPER.pdf", wantOK: false},
		{input: "memorial.pdf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractProjectCode(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "PRJ-ECX-IPER-02-07", StripExtension("PRJ-ECX-IPER-02-07.pdf"))
	assert.Equal(t, "PRJ-ECX-IPER-02-07", StripExtension("PRJ-ECX-IPER-02-07"))
	assert.Equal(t, "a.b", StripExtension("a.b.pdf"))
}

func TestParseFileName(t *testing.T) {
	catalog := DefaultTables().Catalog

	meta := ParseFileName("PRJ-ECX-IPER-02-07_assinado.pdf", catalog)
	assert.Equal(t, "PRJ-ECX-IPER-02-07_assinado", meta.BaseName)
	assert.Equal(t, "PRJ-ECX-IPER-02-07", meta.MatchName)
	assert.True(t, meta.Signed)
	assert.Equal(t, "02 07", meta.SheetNumber)
	assert.Equal(t, "ECX", meta.ProjectCode)
	assert.Equal(t, "PROJETO ELÉTRICO DE BAIXA", meta.ProjectDescription)
	assert.True(t, meta.ProjectResolvable())

	unknown := ParseFileName("PRJ-XYZ-IPER-01-01.pdf", catalog)
	assert.Equal(t, "XYZ", unknown.ProjectCode)
	assert.Equal(t, DescriptionUnknown, unknown.ProjectDescription)
	assert.False(t, unknown.ProjectResolvable())

	none := ParseFileName("memorial.pdf", catalog)
	assert.False(t, none.HasProject())
	assert.False(t, none.HasSheet())
	assert.False(t, none.Signed)
	assert.Equal(t, DescriptionUnidentified, none.ProjectDescription)
}
