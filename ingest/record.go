package ingest

import "strings"

// Record is one CSV data row keyed by the file's header.
// Records from the same file share their header index.
type Record struct {
	header []string
	index  map[string]int
	values []string
}

// NewRecord builds a standalone record from a header and its values.
func NewRecord(header, values []string) Record {
	return Record{header: header, index: indexHeader(header), values: values}
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		// first occurrence wins on duplicate headers
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	return idx
}

// Has reports whether the record's header carries the column.
func (r Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the trimmed value of the column, or def when the column is
// absent from the header or the cell is blank.
func (r Record) Get(name, def string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return def
	}
	v := strings.TrimSpace(r.values[i])
	if v == "" {
		return def
	}
	return v
}

// Columns returns the header in file order.
func (r Record) Columns() []string {
	return r.header
}

// Map returns the record as column -> raw value.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for i, h := range r.header {
		if i < len(r.values) {
			m[h] = r.values[i]
		}
	}
	return m
}
