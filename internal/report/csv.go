package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the report as CSV with a header row.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(r.Headers); err != nil {
		return fmt.Errorf("writing %s header: %w", r.Title, err)
	}

	record := make([]string, len(r.Headers))
	for _, row := range r.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing %s row: %w", r.Title, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", r.Title, err)
	}
	return nil
}
