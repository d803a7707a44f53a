package dataset

import (
	"fmt"
	"os"
	"strings"
)

// ReadOptions controls how a source file is parsed. The zero value
// means UTF-8, comma-delimited, no row windowing.
type ReadOptions struct {
	Encoding  string // "utf-8" (default) or "latin-1"
	Delimiter rune   // CSV field delimiter, ',' when zero
	SkipRows  int    // rows to skip before the CSV header
	MaxRows   int    // cap on data rows read from CSV, 0 = unlimited
}

func (o ReadOptions) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// ReadFile parses a CSV, JSON or XML file into a Dataset. The format
// is taken from the file extension. Row windowing (SkipRows/MaxRows)
// applies to CSV only; structured formats are read whole.
func ReadFile(path string, opts ReadOptions) (*Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := decodeBytes(raw, opts.Encoding)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return readCSV(text, opts)
	case FormatJSON:
		return readJSON(text)
	case FormatXML:
		return readXML(text)
	}
	return nil, fmt.Errorf("unsupported file format: %s", format)
}

// decodeBytes converts raw file bytes to a UTF-8 string. Latin-1 is
// decoded byte-for-byte; anything else must already be UTF-8.
func decodeBytes(raw []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8", "ascii":
		return string(raw), nil
	case "latin-1", "latin1", "iso-8859-1":
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		return string(runes), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s", encoding)
	}
}
