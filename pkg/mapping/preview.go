package mapping

import (
	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/validation"
)

// DefaultPreviewRows caps how many rows a preview carries
const DefaultPreviewRows = 10

// ColumnInfo summarizes one column for mapping UIs
type ColumnInfo struct {
	DataType     validation.TypeTag `json:"data_type"`
	UniqueCount  int                `json:"unique_count"`
	MissingCount int                `json:"missing_count"`
	SampleValues []model.Value      `json:"sample_values"`
}

// Preview is a truncated view of a dataset plus per-column summaries
type Preview struct {
	Columns     []string                 `json:"columns"`
	TotalRows   int                      `json:"total_rows"`
	PreviewRows int                      `json:"preview_rows"`
	Data        []map[string]model.Value `json:"data"`
	ColumnInfo  map[string]ColumnInfo    `json:"column_info"`
}

// UIConfig carries everything a mapping wizard needs to render
type UIConfig struct {
	Columns        []string                      `json:"columns"`
	DetectedTypes  map[string]validation.TypeTag `json:"detected_types"`
	Suggestions    map[string][]string           `json:"suggestions"`
	CurrentMapping map[string]string             `json:"current_mapping"`
	SupportedTypes []validation.TypeTag          `json:"supported_types"`
	DataPreview    *Preview                      `json:"data_preview"`
}

// CreatePreview builds a preview of the first maxRows rows with
// per-column type detection, unique/missing counts and up to five
// non-null sample values.
func CreatePreview(d *dataset.Dataset, maxRows int) *Preview {
	if maxRows <= 0 {
		maxRows = DefaultPreviewRows
	}
	head := d.Head(maxRows)

	preview := &Preview{
		Columns:     d.Columns,
		TotalRows:   d.NumRows(),
		PreviewRows: head.NumRows(),
		Data:        head.Records(),
		ColumnInfo:  make(map[string]ColumnInfo, d.NumColumns()),
	}

	for _, column := range d.Columns {
		samples := d.NonNull(column)
		if len(samples) > 5 {
			samples = samples[:5]
		}
		preview.ColumnInfo[column] = ColumnInfo{
			DataType:     validation.DetectColumnType(d, column),
			UniqueCount:  d.UniqueCount(column),
			MissingCount: d.MissingCount(column),
			SampleValues: samples,
		}
	}
	return preview
}

// CreateUIConfig assembles the configuration consumed by the mapping
// UI for one dataset.
func (m *Mapper) CreateUIConfig(d *dataset.Dataset) *UIConfig {
	return &UIConfig{
		Columns:        d.Columns,
		DetectedTypes:  m.DetectTypes(d),
		Suggestions:    Suggestions(d),
		CurrentMapping: m.mappingConfig,
		SupportedTypes: validation.SupportedTypeTags(),
		DataPreview:    CreatePreview(d, DefaultPreviewRows),
	}
}
