package stamp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	records := tables.Roster.Records()
	require.Len(t, records, 5)
	assert.Equal(t, "RODRIGO DAMASCENO NASCIMENTO", records[0].Name)

	desc, ok := tables.Catalog.Lookup("ILUX")
	assert.True(t, ok)
	assert.Equal(t, "PROJETO DE ILUMINAÇÃO EXTERNA", desc)
	assert.Len(t, tables.Catalog.Entries(), 30)
	assert.Contains(t, tables.Keywords, "IPER")
}

func TestRoster_Owner(t *testing.T) {
	roster := DefaultTables().Roster

	tests := []struct {
		term   string
		want   string
		wantOK bool
	}{
		{term: "RODRIGO DAMASCENO NASCIMENTO", want: "RODRIGO DAMASCENO NASCIMENTO", wantOK: true},
		{term: "092019291-2", want: "RODRIGO DAMASCENO NASCIMENTO", wantOK: true},
		{term: "A2787733", want: "RITHELLY LOBATO", wantOK: true},
		{term: "IPER", wantOK: false},
		{term: "rodrigo damasceno nascimento", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, ok := roster.Owner(tt.term)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRoster_Invalid(t *testing.T) {
	_, err := NewRoster([]EngineerRecord{{Name: "  "}})
	assert.Error(t, err)

	_, err = NewRoster([]EngineerRecord{
		{Name: "A", Registrations: []string{"123"}},
		{Name: "B", Registrations: []string{"123"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to both")

	_, err = NewRoster([]EngineerRecord{{Name: "A", Registrations: []string{""}}})
	assert.Error(t, err)
}

func TestRoster_RecordsIsACopy(t *testing.T) {
	roster := DefaultTables().Roster
	records := roster.Records()
	records[0].Name = "CHANGED"
	records[0].Registrations[0] = "CHANGED"

	assert.Equal(t, "RODRIGO DAMASCENO NASCIMENTO", roster.Records()[0].Name)
	assert.Equal(t, "0920192912", roster.Records()[0].Registrations[0])
}

func TestCatalog_Describe(t *testing.T) {
	catalog := DefaultTables().Catalog

	assert.Equal(t, "PROJETO DE SPDA", catalog.Describe("SPDA"))
	assert.Equal(t, DescriptionUnknown, catalog.Describe("NOPE"))
	assert.Equal(t, DescriptionUnidentified, catalog.Describe(""))
}

func TestNewCatalog_Duplicate(t *testing.T) {
	_, err := NewCatalog([]ProjectCodeEntry{
		{Code: "ECX", Description: "A"},
		{Code: "ECX", Description: "B"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate project code")

	_, err = NewCatalog([]ProjectCodeEntry{{Code: "", Description: "A"}})
	assert.Error(t, err)
}

func TestParseTables(t *testing.T) {
	doc := []byte(`
engineers:
  - name: MARIA SILVA
    registrations: ["123456", "12345-6"]
keywords:
  - "  OBRA X  "
  - ""
`)

	tables, err := ParseTables(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"MARIA SILVA", "123456", "12345-6"}, tables.Roster.FixedSearchTerms())
	assert.Equal(t, []string{"OBRA X"}, tables.Keywords)

	// projects were not overridden
	_, ok := tables.Catalog.Lookup("ECX")
	assert.True(t, ok)
}

func TestParseTables_Errors(t *testing.T) {
	_, err := ParseTables([]byte("engineers: [unclosed"))
	assert.Error(t, err)

	_, err = ParseTables([]byte(`
projects:
  - code: ECX
    description: A
  - code: ECX
    description: B
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid projects")
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - code: NEW\n    description: PROJETO NOVO\n"), 0o600))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, "PROJETO NOVO", tables.Catalog.Describe("NEW"))
	assert.Equal(t, DescriptionUnknown, tables.Catalog.Describe("ECX"))

	_, err = LoadTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
