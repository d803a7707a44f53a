// Package importer orchestrates the import pipeline: format
// validation, file reading, column mapping, type detection, data
// validation, graph transformation and hierarchy assignment.
package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/netgraph/netgraph/pkg/dataset"
	"github.com/netgraph/netgraph/pkg/logging"
	"github.com/netgraph/netgraph/pkg/mapping"
	"github.com/netgraph/netgraph/pkg/metrics"
	"github.com/netgraph/netgraph/pkg/model"
	"github.com/netgraph/netgraph/pkg/transform"
	"github.com/netgraph/netgraph/pkg/validation"
)

// uiConfigSampleRows is how many rows the mapping wizard reads for
// type detection and suggestions.
const uiConfigSampleRows = 100

// ImportConfig carries every parameter of a single import request.
type ImportConfig struct {
	FilePath      string                        `json:"file_path"`
	Encoding      string                        `json:"file_encoding"`
	Delimiter     rune                          `json:"-"`
	SkipRows      int                           `json:"skip_rows"`
	MaxRows       int                           `json:"max_rows"`
	MappingConfig map[string]string             `json:"mapping_config"`
	DataTypes     map[string]validation.TypeTag `json:"data_types"`
}

// ImportResult is the outcome of one import. ImportData never fails
// with a Go error: every failure mode lands in Errors with
// Success=false.
type ImportResult struct {
	Success       bool             `json:"success"`
	GraphData     *model.GraphData `json:"-"`
	ImportLog     string           `json:"import_log"`
	Errors        []string         `json:"errors"`
	Warnings      []string         `json:"warnings"`
	ProcessedRows int              `json:"processed_rows"`
	TotalRows     int              `json:"total_rows"`
}

// DataPreview is a dataset preview enriched with mapping suggestions
// and detected column types for UI wizards.
type DataPreview struct {
	*mapping.Preview
	MappingSuggestions map[string][]string           `json:"mapping_suggestions"`
	DetectedTypes      map[string]validation.TypeTag `json:"detected_types"`
}

// Importer runs the import pipeline. It is not safe for concurrent
// use; callers wanting parallel imports should use one Importer per
// goroutine.
type Importer struct {
	mapper    *mapping.Mapper
	hierarchy transform.HierarchyConfig
	logger    logging.Logger
	metrics   *metrics.Registry
}

// NewImporter creates an importer with default hierarchy settings.
// A nil logger or registry falls back to the process-wide defaults.
func NewImporter(logger logging.Logger, reg *metrics.Registry) *Importer {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &Importer{
		mapper:    mapping.NewMapper(),
		hierarchy: transform.DefaultHierarchyConfig(),
		logger:    logger.With(logging.Component("importer")),
		metrics:   reg,
	}
}

// SetHierarchyConfig overrides the hierarchy heuristic thresholds.
func (i *Importer) SetHierarchyConfig(cfg transform.HierarchyConfig) {
	i.hierarchy = cfg
}

// ImportData runs the full pipeline for one file. It never returns a
// Go error: all failures resolve to Success=false with populated
// Errors, and unexpected panics are converted to a generic entry.
func (i *Importer) ImportData(config *ImportConfig) (result *ImportResult) {
	result = &ImportResult{}
	start := time.Now()
	format := formatLabel(config.FilePath)

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("Import failed with error: %v", r))
			i.logger.Error("import panicked", logging.Path(config.FilePath), logging.Any("panic", r))
		}
		status := "success"
		if !result.Success {
			status = "failed"
		}
		i.metrics.RecordImport(format, status, time.Since(start), result.ProcessedRows)
		i.metrics.RecordImportIssues(len(result.Errors), len(result.Warnings))
	}()

	i.logger.Info("starting import", logging.Path(config.FilePath), logging.Format(format))

	if ok, msg := validation.ValidateFileFormat(config.FilePath); !ok {
		result.Errors = append(result.Errors, msg)
		return result
	}

	data, err := dataset.ReadFile(config.FilePath, dataset.ReadOptions{
		Encoding:  config.Encoding,
		Delimiter: config.Delimiter,
		SkipRows:  config.SkipRows,
		MaxRows:   config.MaxRows,
	})
	if err != nil {
		i.logger.Error("failed to read data file", logging.Path(config.FilePath), logging.Error(err))
		result.Errors = append(result.Errors, "Failed to read data file")
		return result
	}

	result.TotalRows = data.NumRows()
	i.logger.Info("read data file", logging.Rows(data.NumRows()), logging.Count(data.NumColumns()))

	if len(config.MappingConfig) == 0 {
		config.MappingConfig = mapping.DefaultMapping(data.Columns)
		i.logger.Info("created default mapping configuration")
	}
	if len(config.DataTypes) == 0 {
		config.DataTypes = i.mapper.DetectTypes(data)
		i.logger.Info("detected data types automatically")
	}

	i.mapper.SetMappingConfig(config.MappingConfig)
	i.mapper.SetDataTypes(config.DataTypes)

	if ok, errs := i.mapper.ValidateMapping(data); !ok {
		result.Errors = append(result.Errors, errs...)
		return result
	}

	report := validation.CreateReport(data, config.MappingConfig, config.DataTypes)
	if !report.IsValid {
		result.Errors = append(result.Errors, report.Errors...)
		return result
	}
	result.Warnings = append(result.Warnings, report.Warnings...)

	graph, err := transform.ToGraph(data, config.MappingConfig, config.DataTypes)
	if err != nil {
		// Mapping contract violations surface here only when the
		// pre-validation above was bypassed or is out of sync.
		result.Errors = append(result.Errors, fmt.Sprintf("Import failed with error: %v", err))
		return result
	}

	if ok, errs := transform.ValidateStructure(graph); !ok {
		result.Errors = append(result.Errors, errs...)
		return result
	}

	transform.ApplyHierarchy(graph, i.hierarchy)

	result.Success = true
	result.GraphData = graph
	result.ImportLog = i.buildImportLog(config, report, graph)
	result.ProcessedRows = data.NumRows()

	i.logger.Info("import completed",
		logging.Nodes(len(graph.Nodes)),
		logging.Edges(len(graph.Edges)),
		logging.Rows(result.ProcessedRows))

	return result
}

// DataPreview reads the head of a file and summarizes it for the
// mapping wizard without running a full import.
func (i *Importer) DataPreview(filePath, encoding string, maxRows int) (*DataPreview, error) {
	if maxRows <= 0 {
		maxRows = mapping.DefaultPreviewRows
	}
	data, err := dataset.ReadFile(filePath, dataset.ReadOptions{
		Encoding: encoding,
		MaxRows:  maxRows,
	})
	if err != nil {
		i.logger.Error("failed to create data preview", logging.Path(filePath), logging.Error(err))
		return nil, err
	}

	return &DataPreview{
		Preview:            mapping.CreatePreview(data, maxRows),
		MappingSuggestions: mapping.Suggestions(data),
		DetectedTypes:      i.mapper.DetectTypes(data),
	}, nil
}

// MappingUIConfig builds the configuration the mapping UI renders
// from, sampling the file for type detection and suggestions.
func (i *Importer) MappingUIConfig(filePath, encoding string) (*mapping.UIConfig, error) {
	data, err := dataset.ReadFile(filePath, dataset.ReadOptions{
		Encoding: encoding,
		MaxRows:  uiConfigSampleRows,
	})
	if err != nil {
		i.logger.Error("failed to create mapping UI config", logging.Path(filePath), logging.Error(err))
		return nil, err
	}
	return i.mapper.CreateUIConfig(data), nil
}

// buildImportLog renders the human-readable import log text.
func (i *Importer) buildImportLog(config *ImportConfig, report *validation.Report, graph *model.GraphData) string {
	lines := []string{
		fmt.Sprintf("Data Import Log - %s", time.Now().Format(time.RFC3339)),
		fmt.Sprintf("File: %s", config.FilePath),
		fmt.Sprintf("Encoding: %s", encodingLabel(config.Encoding)),
		fmt.Sprintf("Total rows processed: %d", len(graph.Nodes)+len(graph.Edges)),
		fmt.Sprintf("Nodes created: %d", len(graph.Nodes)),
		fmt.Sprintf("Edges created: %d", len(graph.Edges)),
		"",
		"Mapping Configuration:",
	}

	for _, field := range sortedKeys(config.MappingConfig) {
		lines = append(lines, fmt.Sprintf("  %s: %s", field, config.MappingConfig[field]))
	}

	lines = append(lines, "", "Data Types:")
	for _, column := range sortedTypeKeys(config.DataTypes) {
		lines = append(lines, fmt.Sprintf("  %s: %s", column, config.DataTypes[column]))
	}

	lines = append(lines,
		"",
		"Validation Summary:",
		fmt.Sprintf("  Errors: %d", len(report.Errors)),
		fmt.Sprintf("  Warnings: %d", len(report.Warnings)),
	)

	if len(report.Errors) > 0 {
		lines = append(lines, "", "Errors:")
		for _, e := range report.Errors {
			lines = append(lines, fmt.Sprintf("  - %s", e))
		}
	}
	if len(report.Warnings) > 0 {
		lines = append(lines, "", "Warnings:")
		for _, w := range report.Warnings {
			lines = append(lines, fmt.Sprintf("  - %s", w))
		}
	}

	summary := transform.CreateSummary(graph)
	lines = append(lines,
		"",
		"Graph Summary:",
		fmt.Sprintf("  Node levels: %v", summary.NodeLevels),
		fmt.Sprintf("  Edge types: %v", summary.EdgeTypes),
		fmt.Sprintf("  Node attributes: %v", sortedStatKeys(summary.NodeAttributes)),
		fmt.Sprintf("  Edge attributes: %v", sortedStatKeys(summary.EdgeAttributes)),
	)

	return strings.Join(lines, "\n")
}

func formatLabel(path string) string {
	format, err := dataset.DetectFormat(path)
	if err != nil {
		return "unknown"
	}
	return string(format)
}

func encodingLabel(encoding string) string {
	if encoding == "" {
		return "utf-8"
	}
	return encoding
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTypeKeys(m map[string]validation.TypeTag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStatKeys(m map[string]transform.AttributeStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
