package stamp

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DescriptionUnidentified is reported when a file name carries no project code.
	DescriptionUnidentified = "unidentified"
	// DescriptionUnknown is reported when the project code is not in the catalog.
	DescriptionUnknown = "unknown"
)

// EngineerRecord is a responsible engineer and the registration (CREA)
// spellings that identify them on a drawing stamp.
type EngineerRecord struct {
	Name          string   `yaml:"name" json:"name"`
	Registrations []string `yaml:"registrations" json:"registrations"`
}

// ProjectCodeEntry maps a discipline code to the description printed on the stamp.
type ProjectCodeEntry struct {
	Code        string `yaml:"code" json:"code"`
	Description string `yaml:"description" json:"description"`
}

// Roster is the fixed, ordered list of engineers searched in every run.
type Roster struct {
	records []EngineerRecord
	owners  map[string]string
}

// NewRoster validates the records and indexes every search term to its engineer.
func NewRoster(records []EngineerRecord) (*Roster, error) {
	r := &Roster{
		records: make([]EngineerRecord, 0, len(records)),
		owners:  make(map[string]string),
	}

	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, errors.New("engineer name cannot be empty")
		}

		terms := append([]string{name}, rec.Registrations...)
		for _, term := range terms {
			if term == "" {
				return nil, fmt.Errorf("engineer %s has an empty registration", name)
			}
			if owner, ok := r.owners[term]; ok && owner != name {
				return nil, fmt.Errorf("term %q belongs to both %s and %s", term, owner, name)
			}
			r.owners[term] = name
		}

		r.records = append(r.records, EngineerRecord{
			Name:          name,
			Registrations: append([]string(nil), rec.Registrations...),
		})
	}

	return r, nil
}

// Records returns a copy of the roster in insertion order.
func (r *Roster) Records() []EngineerRecord {
	out := make([]EngineerRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = EngineerRecord{
			Name:          rec.Name,
			Registrations: append([]string(nil), rec.Registrations...),
		}
	}
	return out
}

// FixedSearchTerms lists every engineer name followed by its registrations.
func (r *Roster) FixedSearchTerms() []string {
	terms := make([]string, 0, len(r.owners))
	for _, rec := range r.records {
		terms = append(terms, rec.Name)
		terms = append(terms, rec.Registrations...)
	}
	return terms
}

// Owner resolves a keyword to the engineer it identifies.
func (r *Roster) Owner(keyword string) (string, bool) {
	name, ok := r.owners[keyword]
	return name, ok
}

// Catalog is the static project code table.
type Catalog struct {
	entries      []ProjectCodeEntry
	descriptions map[string]string
}

// NewCatalog builds a catalog, rejecting empty or duplicate codes.
func NewCatalog(entries []ProjectCodeEntry) (*Catalog, error) {
	c := &Catalog{
		entries:      make([]ProjectCodeEntry, 0, len(entries)),
		descriptions: make(map[string]string, len(entries)),
	}

	for _, e := range entries {
		code := strings.TrimSpace(e.Code)
		if code == "" {
			return nil, errors.New("project code cannot be empty")
		}
		if _, dup := c.descriptions[code]; dup {
			return nil, fmt.Errorf("duplicate project code: %s", code)
		}
		c.descriptions[code] = e.Description
		c.entries = append(c.entries, ProjectCodeEntry{Code: code, Description: e.Description})
	}

	return c, nil
}

// Entries returns the catalog in declaration order.
func (c *Catalog) Entries() []ProjectCodeEntry {
	return append([]ProjectCodeEntry(nil), c.entries...)
}

// Lookup returns the description registered for code.
func (c *Catalog) Lookup(code string) (string, bool) {
	d, ok := c.descriptions[code]
	return d, ok
}

// Describe maps an optional code to its report description.
func (c *Catalog) Describe(code string) string {
	if code == "" {
		return DescriptionUnidentified
	}
	if d, ok := c.descriptions[code]; ok {
		return d
	}
	return DescriptionUnknown
}

// Tables bundles the reference data a checker run needs.
type Tables struct {
	Roster   *Roster
	Catalog  *Catalog
	Keywords []string
}

type tablesFile struct {
	Engineers []EngineerRecord   `yaml:"engineers"`
	Projects  []ProjectCodeEntry `yaml:"projects"`
	Keywords  []string           `yaml:"keywords"`
}

// DefaultTables returns the built-in roster, catalog and supplementary keywords.
func DefaultTables() *Tables {
	roster, err := NewRoster(defaultEngineers)
	if err != nil {
		panic(err)
	}
	catalog, err := NewCatalog(defaultProjects)
	if err != nil {
		panic(err)
	}
	return &Tables{
		Roster:   roster,
		Catalog:  catalog,
		Keywords: append([]string(nil), defaultKeywords...),
	}
}

// LoadTables reads a YAML override file. Sections left out of the file keep
// their built-in values.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read tables file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes a YAML tables document on top of the defaults.
func ParseTables(data []byte) (*Tables, error) {
	var doc tablesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid tables file: %w", err)
	}

	tables := DefaultTables()
	if len(doc.Engineers) > 0 {
		roster, err := NewRoster(doc.Engineers)
		if err != nil {
			return nil, fmt.Errorf("invalid engineers: %w", err)
		}
		tables.Roster = roster
	}
	if len(doc.Projects) > 0 {
		catalog, err := NewCatalog(doc.Projects)
		if err != nil {
			return nil, fmt.Errorf("invalid projects: %w", err)
		}
		tables.Catalog = catalog
	}
	if doc.Keywords != nil {
		tables.Keywords = CleanKeywordLines(doc.Keywords)
	}

	return tables, nil
}

var defaultEngineers = []EngineerRecord{
	{Name: "RODRIGO DAMASCENO NASCIMENTO", Registrations: []string{"0920192912", "092019291-2"}},
	{Name: "JÂNIO RIBEIRO LOPES", Registrations: []string{"0912111810", "091211181-0"}},
	{Name: "FLAVIO SORDI", Registrations: []string{"2201136580"}},
	{Name: "RITHELLY LOBATO", Registrations: []string{"A278773-3", "A2787733"}},
	{Name: "SALOMÃO", Registrations: []string{"0401863549", "040186354-9"}},
}

var defaultProjects = []ProjectCodeEntry{
	{Code: "ECX", Description: "PROJETO ELÉTRICO DE BAIXA"},
	{Code: "ILUX", Description: "PROJETO DE ILUMINAÇÃO EXTERNA"},
	{Code: "CFTV", Description: "PROJETO DE CFTV"},
	{Code: "CAB", Description: "PROJETO DE CABEAMENTO"},
	{Code: "SOM", Description: "PROJETO DE SONORIZAÇÃO"},
	{Code: "SUB", Description: "PROJETO DE SUBESTAÇÃO"},
	{Code: "SPDA", Description: "PROJETO DE SPDA"},
	{Code: "TEF", Description: "PROJETO DE TELEFONIA"},
	{Code: "ALI", Description: "PROJETO ELÉTRICO DE BAIXA"},
	{Code: "TUG", Description: "PROJETO ELÉTRICO DE BAIXA"},
	{Code: "ILU", Description: "PROJETO ELÉTRICO DE BAIXA"},
	{Code: "EME", Description: "PROJETO ELÉTRICO DE BAIXA"},
	{Code: "FOT", Description: "PROJETO ELÉTRICO FOTOVOLTAICO"},
	{Code: "LEV", Description: "LEVANTAMENTO TOPOGRÁFICO"},
	{Code: "EST", Description: "ESTRUTURA DE CONCRETO ARMADO"},
	{Code: "FUN", Description: "ESTRUTURA DE CONCRETO ARMADO"},
	{Code: "EMT", Description: "ESTRUTURA METÁLICA"},
	{Code: "DRE", Description: "PROJETO DE DRENAGEM"},
	{Code: "PAV", Description: "PROJETO DE PAVIMENTAÇÃO"},
	{Code: "REG", Description: "PROJETO DE REDE DE ESGOTO"},
	{Code: "TER", Description: "PROJETO DE TERRAPLENAGEM"},
	{Code: "CANT", Description: "PROJETO DE CANTEIRO DE OBRAS"},
	{Code: "HID", Description: "PROJETO DE INSTALAÇÕES HIDRÁULICAS"},
	{Code: "IRRI", Description: "PROJETO DE IRRIGAÇÃO"},
	{Code: "SAN", Description: "PROJETO DE INSTALAÇÕES SANITÁRIAS"},
	{Code: "PLU", Description: "PROJETO DE SISTEMA DE REDES DE ÁGUAS"},
	{Code: "INC", Description: "PROJETO DE PREVENÇÃO E COMBATE A INCÊNDIO"},
	{Code: "GLP", Description: "PROJETO DE INSTALAÇÕES DE GASES GLP"},
	{Code: "CLI", Description: "PROJETO DE INSTALAÇÕES DE GASES GLP"},
	{Code: "EXA", Description: "PROJETO DE EXAUSTÃO"},
}

// Project-specific terms offered as the default supplementary keyword list.
var defaultKeywords = []string{
	"IPER",
	"CONSTRUÇÃO DA SEDE DO INSTITUTO DE PREVIDÊNCIA DO ESTADO",
	"DE RORAIMA - IPER",
	"AGOSTO",
	"2025",
	"RUA",
	"CC-22",
	"LOTE: 712 - REM.",
	"LAURA MOREIRA",
	"69318-105",
	"BOA VISTA",
	"RR",
	"2.220,32",
	"2.654,11",
	"SAUDE",
	"SAÚDE",
}
