package validation

import (
	"fmt"

	"github.com/netgraph/netgraph/pkg/dataset"
)

// Report is the combined result of validating a dataset against a
// mapping configuration and declared column types.
type Report struct {
	IsValid       bool               `json:"is_valid"`
	Errors        []string           `json:"errors"`
	Warnings      []string           `json:"warnings"`
	TypeDetection map[string]TypeTag `json:"type_detection"`
	Summary       DataSummary        `json:"data_summary"`
}

// DataSummary describes the shape of a dataset
type DataSummary struct {
	TotalRows     int            `json:"total_rows"`
	TotalColumns  int            `json:"total_columns"`
	MissingValues map[string]int `json:"missing_values"`
	UniqueValues  map[string]int `json:"unique_values"`
}

// CreateReport runs mapping validation, declared-type validation and
// per-column type detection over a dataset. Mismatches between a
// detected and an explicitly declared type are warnings, never
// errors: declared types fail only when the data cannot convert.
func CreateReport(d *dataset.Dataset, mapping map[string]string, dataTypes map[string]TypeTag) *Report {
	report := &Report{
		Errors:        make([]string, 0),
		Warnings:      make([]string, 0),
		TypeDetection: make(map[string]TypeTag, d.NumColumns()),
	}

	_, mappingErrors := ValidateMappingConfig(mapping, d.Columns)
	report.Errors = append(report.Errors, mappingErrors...)

	_, typeErrors := ValidateDataTypes(d, dataTypes)
	report.Errors = append(report.Errors, typeErrors...)

	for _, column := range d.Columns {
		detected := DetectColumnType(d, column)
		report.TypeDetection[column] = detected
		if declared, ok := dataTypes[column]; ok && declared != detected {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"Column '%s': detected type '%s' differs from specified type '%s'",
				column, detected, declared))
		}
	}

	report.Summary = DataSummary{
		TotalRows:     d.NumRows(),
		TotalColumns:  d.NumColumns(),
		MissingValues: make(map[string]int, d.NumColumns()),
		UniqueValues:  make(map[string]int, d.NumColumns()),
	}
	for _, column := range d.Columns {
		report.Summary.MissingValues[column] = d.MissingCount(column)
		report.Summary.UniqueValues[column] = d.UniqueCount(column)
	}

	if d.NumRows() == 0 {
		report.Warnings = append(report.Warnings, "Data file is empty")
	}
	if d.NumColumns() == 0 {
		report.Warnings = append(report.Warnings, "Data file has no columns")
	}

	report.IsValid = len(report.Errors) == 0
	return report
}
