// Package mapping translates flat mapping configurations (field name
// to source column) into the structured hints used by the graph
// transformer, and generates default mappings and suggestions when
// the caller does not supply any.
package mapping

import (
	"strings"

	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/validation"
)

// Candidate column names scanned in order when building a default
// mapping; first match wins.
var (
	idCandidates     = []string{"id", "ID", "Id", "node_id", "nodeid", "identifier"}
	nameCandidates   = []string{"name", "Name", "NAME", "node_name", "nodename", "title", "Title"}
	sourceCandidates = []string{"source", "Source", "SOURCE", "from", "From", "FROM", "start", "Start"}
	targetCandidates = []string{"target", "Target", "TARGET", "to", "To", "TO", "end", "End"}
)

// Mapper holds the active mapping configuration and declared column
// types for one import.
type Mapper struct {
	mappingConfig map[string]string
	dataTypes     map[string]validation.TypeTag
}

// NewMapper creates a mapper with an empty configuration
func NewMapper() *Mapper {
	return &Mapper{
		mappingConfig: make(map[string]string),
		dataTypes:     make(map[string]validation.TypeTag),
	}
}

// SetMappingConfig replaces the active mapping configuration
func (m *Mapper) SetMappingConfig(mapping map[string]string) {
	m.mappingConfig = mapping
}

// SetDataTypes replaces the declared column types
func (m *Mapper) SetDataTypes(dataTypes map[string]validation.TypeTag) {
	m.dataTypes = dataTypes
}

// MappingConfig returns the active mapping configuration
func (m *Mapper) MappingConfig() map[string]string {
	return m.mappingConfig
}

// DataTypes returns the declared column types
func (m *Mapper) DataTypes() map[string]validation.TypeTag {
	return m.dataTypes
}

// DefaultMapping builds a mapping configuration from column names
// alone. node_id and node_name are always present (empty when no
// candidate column was found, signaling "no mapping"); edge_source
// and edge_target appear only when a candidate exists; every
// unclaimed column becomes an attribute_<column> entry.
func DefaultMapping(columns []string) map[string]string {
	mapping := make(map[string]string)

	if col, ok := firstMatch(idCandidates, columns); ok {
		mapping[validation.FieldNodeID] = col
	} else {
		mapping[validation.FieldNodeID] = ""
	}
	if col, ok := firstMatch(nameCandidates, columns); ok {
		mapping[validation.FieldNodeName] = col
	} else {
		mapping[validation.FieldNodeName] = ""
	}
	if col, ok := firstMatch(sourceCandidates, columns); ok {
		mapping[validation.FieldEdgeSource] = col
	}
	if col, ok := firstMatch(targetCandidates, columns); ok {
		mapping[validation.FieldEdgeTarget] = col
	}

	claimed := make(map[string]bool, len(mapping))
	for _, col := range mapping {
		claimed[col] = true
	}
	for _, col := range columns {
		if !claimed[col] {
			mapping[validation.AttributePrefix+col] = col
		}
	}
	return mapping
}

func firstMatch(candidates, columns []string) (string, bool) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, candidate := range candidates {
		if present[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// DetectTypes applies type detection to every column of a dataset
func (m *Mapper) DetectTypes(d *dataset.Dataset) map[string]validation.TypeTag {
	detected := make(map[string]validation.TypeTag, d.NumColumns())
	for _, column := range d.Columns {
		detected[column] = validation.DetectColumnType(d, column)
	}
	return detected
}

// TransformDataTypes converts columns in place according to the
// declared types. A column that fails to convert is left in its
// original form; the whole dataset never fails.
func (m *Mapper) TransformDataTypes(d *dataset.Dataset) {
	for column, tag := range m.dataTypes {
		if !d.HasColumn(column) {
			continue
		}
		converted, err := validation.ConvertColumn(d.Column(column), tag)
		if err != nil {
			continue
		}
		d.SetColumn(column, converted)
	}
}

// ValidateMapping checks the active mapping configuration against a
// dataset's columns.
func (m *Mapper) ValidateMapping(d *dataset.Dataset) (bool, []string) {
	return validation.ValidateMappingConfig(m.mappingConfig, d.Columns)
}

// Suggestions proposes candidate columns per mapping category using
// case-insensitive substring matches. Columns claimed by none of the
// id/name/source/target categories are suggested as both node and
// edge attributes.
func Suggestions(d *dataset.Dataset) map[string][]string {
	suggestions := map[string][]string{
		"node_id":         {},
		"node_name":       {},
		"edge_source":     {},
		"edge_target":     {},
		"node_attributes": {},
		"edge_attributes": {},
	}

	keywords := []struct {
		category string
		words    []string
	}{
		{"node_id", []string{"id", "identifier", "key"}},
		{"node_name", []string{"name", "title", "label"}},
		{"edge_source", []string{"source", "from", "start"}},
		{"edge_target", []string{"target", "to", "end"}},
	}

	for _, column := range d.Columns {
		lower := strings.ToLower(column)
		claimed := false
		for _, kw := range keywords {
			for _, word := range kw.words {
				if strings.Contains(lower, word) {
					suggestions[kw.category] = append(suggestions[kw.category], column)
					claimed = true
					break
				}
			}
		}
		if !claimed {
			suggestions["node_attributes"] = append(suggestions["node_attributes"], column)
			suggestions["edge_attributes"] = append(suggestions["edge_attributes"], column)
		}
	}
	return suggestions
}
