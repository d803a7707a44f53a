package dataset

import (
	"fmt"
	"strings"
)

// Format identifies a supported file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// SupportedFormats lists the accepted import formats in display order
var SupportedFormats = []Format{FormatCSV, FormatJSON, FormatXML}

// DetectFormat resolves a file path, a bare extension or an extension
// with a leading dot into a Format. Matching is case-insensitive.
func DetectFormat(pathOrExt string) (Format, error) {
	token := strings.ToLower(pathOrExt)
	if i := strings.LastIndex(token, "."); i >= 0 {
		token = token[i+1:]
	}
	switch Format(token) {
	case FormatCSV, FormatJSON, FormatXML:
		return Format(token), nil
	}
	return "", fmt.Errorf("unsupported file format: %s. Supported formats: %v", token, SupportedFormats)
}
