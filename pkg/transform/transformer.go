// Package transform converts tabular datasets into graph data,
// validates graph structure and assigns hierarchy levels.
package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/validation"
)

// Contract violations raised when a mapping reaches the transformer
// without its required fields. These propagate to direct callers; the
// importer validates mappings before ever calling ToGraph.
var (
	ErrMissingNodeID     = errors.New("mapping has no node_id field")
	ErrMissingEdgeFields = errors.New("mapping requires both edge_source and edge_target fields")
)

// ToGraph converts a dataset into graph data using a mapping
// configuration and declared column types. Column type conversions
// are applied first; a column that fails conversion keeps its
// original values instead of failing the batch. The mapping shape
// (any edge_ field present) selects the edge or node path.
func ToGraph(d *dataset.Dataset, mapping map[string]string, dataTypes map[string]validation.TypeTag) (*model.GraphData, error) {
	converted := d.Head(d.NumRows())
	for column, tag := range dataTypes {
		if !converted.HasColumn(column) {
			continue
		}
		if values, err := validation.ConvertColumn(converted.Column(column), tag); err == nil {
			converted.SetColumn(column, values)
		}
	}

	if validation.IsEdgeMapping(mapping) {
		return edgesFromRows(converted, mapping)
	}
	return nodesFromRows(converted, mapping)
}

// nodesFromRows builds one node per row. A missing node_name mapping
// synthesizes "Node_<id>" display names.
func nodesFromRows(d *dataset.Dataset, mapping map[string]string) (*model.GraphData, error) {
	idColumn := mapping[validation.FieldNodeID]
	if idColumn == "" {
		return nil, ErrMissingNodeID
	}

	graph := model.NewGraphData()
	nameColumn := mapping[validation.FieldNodeName]
	levelColumn := mapping[validation.FieldNodeLevel]

	for i := range d.Rows {
		idValue, ok := d.Cell(i, idColumn)
		if !ok {
			return nil, fmt.Errorf("node_id column %q not found in data", idColumn)
		}
		id := idValue.Text()

		name := "Node_" + id
		if nameColumn != "" {
			if v, ok := d.Cell(i, nameColumn); ok {
				name = v.Text()
			}
		}

		node := model.NewNode(id, name)
		copyMappedValues(d, i, mapping, node.Attributes, node.KPIs)

		if levelColumn != "" {
			if v, ok := d.Cell(i, levelColumn); ok {
				if level, ok := toInt(v); ok {
					node.Level = level
				}
			}
		}

		graph.AddNode(node)
	}
	return graph, nil
}

// edgesFromRows builds one edge per row, auto-creating a bare node
// for any source or target id not yet present so edge imports are
// self-consistent without a prior node import.
func edgesFromRows(d *dataset.Dataset, mapping map[string]string) (*model.GraphData, error) {
	sourceColumn := mapping[validation.FieldEdgeSource]
	targetColumn := mapping[validation.FieldEdgeTarget]
	if sourceColumn == "" || targetColumn == "" {
		return nil, ErrMissingEdgeFields
	}

	graph := model.NewGraphData()
	typeColumn := mapping[validation.FieldEdgeType]
	levelColumn := mapping[validation.FieldEdgeLevel]
	weightColumn := mapping[validation.FieldEdgeWeight]
	known := make(map[string]bool)

	for i := range d.Rows {
		sourceValue, ok := d.Cell(i, sourceColumn)
		if !ok {
			return nil, fmt.Errorf("edge_source column %q not found in data", sourceColumn)
		}
		targetValue, ok := d.Cell(i, targetColumn)
		if !ok {
			return nil, fmt.Errorf("edge_target column %q not found in data", targetColumn)
		}
		source := sourceValue.Text()
		target := targetValue.Text()

		edge := model.NewEdge(source, target)
		copyMappedValues(d, i, mapping, edge.Attributes, edge.KPIComponents)

		if typeColumn != "" {
			if v, ok := d.Cell(i, typeColumn); ok && !v.IsNull() {
				edge.RelationshipType = v.Text()
			}
		}
		if levelColumn != "" {
			if v, ok := d.Cell(i, levelColumn); ok {
				if level, ok := toInt(v); ok {
					edge.Level = level
				}
			}
		}
		if weightColumn != "" {
			if v, ok := d.Cell(i, weightColumn); ok {
				if weight, ok := v.Numeric(); ok {
					edge.Weight = weight
				}
			}
		}

		graph.AddEdge(edge)

		if !known[source] {
			known[source] = true
			graph.AddNode(model.NewNode(source, source))
		}
		if !known[target] {
			known[target] = true
			graph.AddNode(model.NewNode(target, target))
		}
	}
	return graph, nil
}

// copyMappedValues copies attribute_* and kpi_* mapped row values
// into the given attribute and KPI maps.
func copyMappedValues(d *dataset.Dataset, row int, mapping map[string]string, attrs, kpis map[string]model.Value) {
	for field, column := range mapping {
		if column == "" {
			continue
		}
		switch {
		case strings.HasPrefix(field, validation.AttributePrefix):
			if v, ok := d.Cell(row, column); ok {
				attrs[strings.TrimPrefix(field, validation.AttributePrefix)] = v
			}
		case strings.HasPrefix(field, validation.KPIPrefix):
			if v, ok := d.Cell(row, column); ok {
				kpis[strings.TrimPrefix(field, validation.KPIPrefix)] = v
			}
		}
	}
}

// toInt converts a value to an int the way the level fields expect:
// integer and float values truncate, strings must be whole numbers.
func toInt(v model.Value) (int, bool) {
	switch v.Type {
	case model.TypeInt:
		i, _ := v.AsInt()
		return int(i), true
	case model.TypeFloat:
		f, _ := v.AsFloat()
		return int(f), true
	case model.TypeString:
		i, err := strconv.Atoi(v.Text())
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
