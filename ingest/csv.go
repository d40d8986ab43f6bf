package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyCSV is returned for input without even a header line.
var ErrEmptyCSV = errors.New("empty csv file")

// ReadCSV parses CSV content whose first row is the header.
// Every data row must have as many fields as the header.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	header = normalizeHeader(header)
	idx := indexHeader(header)

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, Record{header: header, index: idx, values: row})
	}

	return records, nil
}

// normalizeHeader trims names and drops a UTF-8 byte order mark
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
