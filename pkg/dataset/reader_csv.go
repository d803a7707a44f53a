package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/netgraph/netgraph/pkg/model"
)

// readCSV parses comma (or custom) delimited text. The first row
// after SkipRows is the header; empty cells become null values.
func readCSV(text string, opts ReadOptions) (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = opts.delimiter()
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err == io.EOF {
			return nil, fmt.Errorf("csv: skip_rows %d exceeds file length", opts.SkipRows)
		} else if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	d := New(append([]string(nil), header...))
	for {
		if opts.MaxRows > 0 && d.NumRows() >= opts.MaxRows {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := make([]model.Value, 0, len(record))
		for _, cell := range record {
			if cell == "" {
				row = append(row, model.NullValue())
			} else {
				row = append(row, model.StringValue(cell))
			}
		}
		d.AppendRow(row)
	}
	return d, nil
}
