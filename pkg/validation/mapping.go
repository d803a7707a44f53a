package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/netgraph/netgraph/pkg/dataset"
)

// Mapping field name conventions
const (
	FieldNodeID     = "node_id"
	FieldNodeName   = "node_name"
	FieldNodeLevel  = "node_level"
	FieldEdgeSource = "edge_source"
	FieldEdgeTarget = "edge_target"
	FieldEdgeType   = "edge_type"
	FieldEdgeLevel  = "edge_level"
	FieldEdgeWeight = "edge_weight"

	AttributePrefix = "attribute_"
	KPIPrefix       = "kpi_"
	edgePrefix      = "edge_"
)

// IsEdgeMapping reports whether a mapping configuration describes
// edge data (any field name starts with "edge_").
func IsEdgeMapping(mapping map[string]string) bool {
	for field := range mapping {
		if strings.HasPrefix(field, edgePrefix) {
			return true
		}
	}
	return false
}

// ValidateMappingConfig checks a mapping configuration against the
// columns available in the data. Edge-shaped mappings require both
// edge_source and edge_target; node-shaped mappings require node_id
// (a node name is synthesized later when unmapped). An empty column
// value means "no mapping" and is treated as an absent field.
func ValidateMappingConfig(mapping map[string]string, availableColumns []string) (bool, []string) {
	errors := make([]string, 0)

	var required []string
	if IsEdgeMapping(mapping) {
		required = []string{FieldEdgeSource, FieldEdgeTarget}
	} else {
		required = []string{FieldNodeID}
	}
	for _, field := range required {
		if mapping[field] == "" {
			errors = append(errors, fmt.Sprintf("Missing required mapping: %s", field))
		}
	}

	available := make(map[string]bool, len(availableColumns))
	for _, col := range availableColumns {
		available[col] = true
	}

	usage := make(map[string]int)
	for _, field := range sortedFields(mapping) {
		column := mapping[field]
		if column == "" {
			continue
		}
		if !available[column] {
			errors = append(errors, fmt.Sprintf("Mapped column '%s' not found in data", column))
		}
		usage[column]++
	}

	duplicates := make([]string, 0)
	for column, count := range usage {
		if count > 1 {
			duplicates = append(duplicates, column)
		}
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		errors = append(errors, fmt.Sprintf("Duplicate column mappings: %v", duplicates))
	}

	return len(errors) == 0, errors
}

func sortedFields(mapping map[string]string) []string {
	fields := make([]string, 0, len(mapping))
	for f := range mapping {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidateDataTypes checks that each declared column/type pair
// actually converts. Columns absent from the data and values that
// fail conversion are both reported as errors.
func ValidateDataTypes(d *dataset.Dataset, dataTypes map[string]TypeTag) (bool, []string) {
	errors := make([]string, 0)

	for _, column := range sortedTypeColumns(dataTypes) {
		tag := dataTypes[column]
		if !d.HasColumn(column) {
			errors = append(errors, fmt.Sprintf("Column '%s' not found in data", column))
			continue
		}
		if tag == TypeString {
			continue
		}
		if _, err := ConvertColumn(d.Column(column), tag); err != nil {
			errors = append(errors, fmt.Sprintf("Column '%s' cannot be converted to %s: %v", column, tag, err))
		}
	}

	return len(errors) == 0, errors
}

func sortedTypeColumns(dataTypes map[string]TypeTag) []string {
	columns := make([]string, 0, len(dataTypes))
	for c := range dataTypes {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns
}

// ValidateFileFormat checks a path or extension against the supported
// import formats.
func ValidateFileFormat(pathOrExt string) (bool, string) {
	if _, err := dataset.DetectFormat(pathOrExt); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// DetectColumnType applies type detection to one dataset column
func DetectColumnType(d *dataset.Dataset, column string) TypeTag {
	return DetectType(d.Column(column))
}
