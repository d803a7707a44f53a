package dataset

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/netgraph/netgraph/pkg/model"
)

// Tag names probed, in order, when looking for record elements
// anywhere in the document tree.
var xmlRecordTags = []string{"record", "item", "node", "edge", "row", "entry"}

// xmlElement is a generic XML tree node
type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []xmlElement `xml:",any"`
	Text     string       `xml:",chardata"`
}

// readXML parses an XML document into a Dataset. The first tag from
// xmlRecordTags found anywhere in the tree selects the record
// elements; otherwise the root's direct children are used. Each
// record's child tags become columns, and element attributes become
// "@"-prefixed columns.
func readXML(text string) (*Dataset, error) {
	var root xmlElement
	if err := xml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}

	var elements []xmlElement
	for _, tag := range xmlRecordTags {
		elements = findByTag(&root, tag)
		if len(elements) > 0 {
			break
		}
	}
	if len(elements) == 0 {
		elements = root.Children
	}

	columns := make([]string, 0)
	seen := make(map[string]bool)
	rows := make([]map[string]model.Value, 0, len(elements))

	for _, el := range elements {
		record := make(map[string]model.Value)
		for _, child := range el.Children {
			record[child.XMLName.Local] = textValue(child.Text)
		}
		for _, attr := range el.Attrs {
			record["@"+attr.Name.Local] = textValue(attr.Value)
		}
		for _, child := range el.Children {
			if !seen[child.XMLName.Local] {
				seen[child.XMLName.Local] = true
				columns = append(columns, child.XMLName.Local)
			}
		}
		for _, attr := range el.Attrs {
			key := "@" + attr.Name.Local
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		rows = append(rows, record)
	}

	d := New(columns)
	for _, record := range rows {
		row := make([]model.Value, len(columns))
		for i, col := range columns {
			if v, ok := record[col]; ok {
				row[i] = v
			} else {
				row[i] = model.NullValue()
			}
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

// findByTag walks the tree depth-first collecting every element whose
// tag matches. The root itself is never a record.
func findByTag(el *xmlElement, tag string) []xmlElement {
	var found []xmlElement
	for i := range el.Children {
		child := &el.Children[i]
		if child.XMLName.Local == tag {
			found = append(found, *child)
		}
		found = append(found, findByTag(child, tag)...)
	}
	return found
}

func textValue(s string) model.Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.NullValue()
	}
	return model.StringValue(trimmed)
}
