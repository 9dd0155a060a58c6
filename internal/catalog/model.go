package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Table is the descriptor written for every table created by the shell.
type Table struct {
	Columns []string          `json:"columns"`
	Rows    []json.RawMessage `json:"rows"`
}

// NewTable returns a table with the given columns and no rows.
func NewTable(columns []string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Columns: cols, Rows: []json.RawMessage{}}
}

// Document is the full schema of one database: table name -> entry.
// Entries stay undecoded, so a rewrite keeps whatever another writer put
// there: extra keys next to "columns", or values that are not tables at all.
type Document map[string]json.RawMessage

// Put encodes t under name, replacing any previous entry. Other entries
// are not touched.
func (d Document) Put(name string, t Table) error {
	if t.Columns == nil {
		t.Columns = []string{}
	}
	if t.Rows == nil {
		t.Rows = []json.RawMessage{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("catalog: encode table %s: %w", name, err)
	}
	d[name] = data
	return nil
}

// Table decodes the entry for name. ok is false when the entry is missing
// or is not a JSON object.
func (d Document) Table(name string) (t Table, ok bool) {
	raw, found := d[name]
	if !found {
		return Table{}, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Table{}, false
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		return Table{}, false
	}
	return t, true
}

// TableNames returns the entry names in document order (sorted, matching
// the key order of the encoded JSON object).
func (d Document) TableNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
