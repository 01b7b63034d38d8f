package lines

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVSource reads tabular data as one line per record, each cell labeled
// with its column header. The whole file is treated as one page.
type CSVSource struct {
	Reader io.Reader
}

func (s *CSVSource) Lines() ([]Line, error) {
	reader := csv.NewReader(s.Reader)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	headers := records[0]

	out := make([]Line, 0, len(records)-1)
	for _, row := range records[1:] {
		var b strings.Builder
		for j, cell := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			if j < len(headers) {
				b.WriteString(headers[j] + ": " + cell)
			} else {
				b.WriteString(cell)
			}
		}
		out = append(out, Line{Page: 1, Ordinal: len(out), Text: b.String()})
	}
	return out, nil
}
