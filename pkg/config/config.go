// Package config loads and validates the YAML application
// configuration shared by the CLI tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netgraph/netgraph/pkg/transform"
	"github.com/netgraph/netgraph/pkg/validation"
)

// Config is the top-level application configuration
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	History   HistoryConfig   `yaml:"history"`
	Import    ImportConfig    `yaml:"import"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
}

// HistoryConfig bounds the undo/redo action log
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// ImportConfig carries default import parameters
type ImportConfig struct {
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`
	SkipRows  int    `yaml:"skip_rows"`
	MaxRows   int    `yaml:"max_rows"`
}

// HierarchyConfig parameterizes the level-promotion heuristic
type HierarchyConfig struct {
	DepartmentAttr    string  `yaml:"department_attribute"`
	LocationAttr      string  `yaml:"location_attribute"`
	PriorityAttr      string  `yaml:"priority_attribute"`
	BudgetAttr        string  `yaml:"budget_attribute"`
	TeamSizeAttr      string  `yaml:"team_size_attribute"`
	HighPriority      string  `yaml:"high_priority_value"`
	BudgetThreshold   float64 `yaml:"budget_threshold"`
	TeamSizeThreshold int     `yaml:"team_size_threshold"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	hierarchy := transform.DefaultHierarchyConfig()
	return &Config{
		LogLevel: "info",
		History: HistoryConfig{
			Limit: 100,
		},
		Import: ImportConfig{
			Encoding:  "utf-8",
			Delimiter: ",",
		},
		Hierarchy: HierarchyConfig{
			DepartmentAttr:    hierarchy.DepartmentAttr,
			LocationAttr:      hierarchy.LocationAttr,
			PriorityAttr:      hierarchy.PriorityAttr,
			BudgetAttr:        hierarchy.BudgetAttr,
			TeamSizeAttr:      hierarchy.TeamSizeAttr,
			HighPriority:      hierarchy.HighPriority,
			BudgetThreshold:   hierarchy.BudgetThreshold,
			TeamSizeThreshold: hierarchy.TeamSizeThreshold,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its allowed range
func (c *Config) Validate() error {
	return validation.NewConfigValidator("config").
		OneOf("log_level", c.LogLevel, []string{"debug", "info", "warn", "error"}).
		Positive("history.limit", c.History.Limit).
		OneOf("import.encoding", c.Import.Encoding, []string{"utf-8", "ascii", "latin-1"}).
		Custom("import.delimiter", func() error {
			if len([]rune(c.Import.Delimiter)) != 1 {
				return fmt.Errorf("must be a single character, got %q", c.Import.Delimiter)
			}
			return nil
		}).
		NonNegative("import.skip_rows", c.Import.SkipRows).
		NonNegative("import.max_rows", c.Import.MaxRows).
		Required("hierarchy.department_attribute", c.Hierarchy.DepartmentAttr).
		Required("hierarchy.location_attribute", c.Hierarchy.LocationAttr).
		Required("hierarchy.priority_attribute", c.Hierarchy.PriorityAttr).
		Required("hierarchy.high_priority_value", c.Hierarchy.HighPriority).
		PositiveFloat("hierarchy.budget_threshold", c.Hierarchy.BudgetThreshold).
		Positive("hierarchy.team_size_threshold", c.Hierarchy.TeamSizeThreshold).
		Validate()
}

// TransformHierarchy converts the YAML hierarchy section to the
// transform package's parameter struct.
func (c *Config) TransformHierarchy() transform.HierarchyConfig {
	return transform.HierarchyConfig{
		DepartmentAttr:    c.Hierarchy.DepartmentAttr,
		LocationAttr:      c.Hierarchy.LocationAttr,
		PriorityAttr:      c.Hierarchy.PriorityAttr,
		BudgetAttr:        c.Hierarchy.BudgetAttr,
		TeamSizeAttr:      c.Hierarchy.TeamSizeAttr,
		HighPriority:      c.Hierarchy.HighPriority,
		BudgetThreshold:   c.Hierarchy.BudgetThreshold,
		TeamSizeThreshold: c.Hierarchy.TeamSizeThreshold,
	}
}

// DelimiterRune returns the import delimiter as a rune
func (c *Config) DelimiterRune() rune {
	runes := []rune(c.Import.Delimiter)
	if len(runes) == 0 {
		return ','
	}
	return runes[0]
}
