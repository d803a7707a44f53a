package dataset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/netgraph/netgraph/pkg/model"
)

// Keys probed, in order, when a JSON document is an object instead of
// a top-level array of records.
var jsonArrayKeys = []string{"data", "records", "items", "nodes", "edges"}

// readJSON parses a JSON document into a Dataset. Accepted shapes: a
// top-level array of objects, an object with a known array key, or a
// bare object treated as a single record.
func readJSON(text string) (*Dataset, error) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	var records []any
	switch v := doc.(type) {
	case []any:
		records = v
	case map[string]any:
		for _, key := range jsonArrayKeys {
			if arr, ok := v[key].([]any); ok {
				records = arr
				break
			}
		}
		if records == nil {
			records = []any{v}
		}
	default:
		return nil, fmt.Errorf("json: unsupported document structure")
	}

	return recordsToDataset(records)
}

// recordsToDataset flattens record objects into rows, collecting
// columns in first-seen order. Non-object records are rejected.
func recordsToDataset(records []any) (*Dataset, error) {
	columns := make([]string, 0)
	seen := make(map[string]bool)
	maps := make([]map[string]any, 0, len(records))

	for i, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json: record %d is not an object", i)
		}
		maps = append(maps, obj)
		// map iteration order is random; sort keys the first time a
		// record introduces them so column order is stable
		for _, key := range sortedKeys(obj) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	d := New(columns)
	for _, obj := range maps {
		row := make([]model.Value, len(columns))
		for i, col := range columns {
			if raw, ok := obj[col]; ok {
				row[i] = model.FromAny(raw)
			} else {
				row[i] = model.NullValue()
			}
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
