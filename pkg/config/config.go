// Package config loads table definitions (datatable.yaml or datatable.toml)
// and the records they display.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/datatable/pkg/core"
	"github.com/go-drift/datatable/pkg/errors"
	"github.com/go-drift/datatable/pkg/table"
)

// DefaultVersion is the schema version assumed when a file has none.
const DefaultVersion = "v1"

// Config is a table definition.
type Config struct {
	Version string         `yaml:"version,omitempty" toml:"version"`
	Table   TableConfig    `yaml:"table" toml:"table"`
	Columns []ColumnConfig `yaml:"columns" toml:"columns"`
	// Data is a .json, .yaml, .yml or .toml file of records.
	Data string `yaml:"data,omitempty" toml:"data"`
	// SQL reads records from a SQLite database instead of Data.
	SQL *SQLSource `yaml:"sql,omitempty" toml:"sql"`

	// path is the file the config was loaded from.
	path string
}

// TableConfig holds table-wide settings.
type TableConfig struct {
	Title     string      `yaml:"title,omitempty" toml:"title"`
	ClassName string      `yaml:"className,omitempty" toml:"className"`
	RowClass  ClassConfig `yaml:"rowClass,omitempty" toml:"rowClass"`
	// Locale selects string collation, e.g. "sv". Empty compares bytes.
	Locale string `yaml:"locale,omitempty" toml:"locale"`
}

// ColumnConfig declares one column.
type ColumnConfig struct {
	Reference string         `yaml:"reference" toml:"reference"`
	Label     string         `yaml:"label,omitempty" toml:"label"`
	CellClass ClassConfig    `yaml:"cellClass,omitempty" toml:"cellClass"`
	Force     bool           `yaml:"force,omitempty" toml:"force"`
	Props     map[string]any `yaml:"props,omitempty" toml:"props"`
}

// SQLSource is a query against a SQLite database.
type SQLSource struct {
	Database string `yaml:"database" toml:"database"`
	Query    string `yaml:"query" toml:"query"`
}

// ClassConfig is a class written either as a literal string or as
// {field, prefix}, which reads the class from a record field.
type ClassConfig struct {
	Literal string
	Field   string
	Prefix  string
}

func (c *ClassConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Literal)
	case yaml.MappingNode:
		var fields struct {
			Field  string `yaml:"field"`
			Prefix string `yaml:"prefix"`
		}
		if err := node.Decode(&fields); err != nil {
			return err
		}
		c.Field, c.Prefix = fields.Field, fields.Prefix
		return nil
	}
	return fmt.Errorf("line %d: class must be a string or a {field, prefix} mapping", node.Line)
}

func (c *ClassConfig) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		c.Literal = v
		return nil
	case map[string]any:
		c.Field, _ = v["field"].(string)
		c.Prefix, _ = v["prefix"].(string)
		return nil
	}
	return fmt.Errorf("class must be a string or a {field, prefix} table, got %T", value)
}

// Spec converts the class to a table.ClassSpec.
func (c ClassConfig) Spec() table.ClassSpec {
	if c.Field != "" {
		return table.FieldClass(c.Field, c.Prefix)
	}
	return table.Literal(c.Literal)
}

// Load reads and validates the config at path. Files ending in .toml are
// decoded as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", errors.KindConfig, path, fmt.Errorf("failed to read config: %w", err))
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, configError("config.Load", errors.KindParsing, path, fmt.Errorf("failed to parse config: %w", err))
	}

	cfg.path = path
	if err := cfg.resolve(); err != nil {
		return nil, configError("config.Load", errors.KindConfig, path, err)
	}
	return &cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// resolve fills defaults and validates the definition.
func (c *Config) resolve() error {
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("version %q is not a semantic version", c.Version)
	}
	if major := semver.Major(c.Version); major != semver.Major(DefaultVersion) {
		return fmt.Errorf("unsupported config version %s (want %s.x)", c.Version, semver.Major(DefaultVersion))
	}

	c.Table.Title = strings.TrimSpace(c.Table.Title)
	if c.Table.Title == "" {
		c.Table.Title = strings.TrimSuffix(filepath.Base(c.path), filepath.Ext(c.path))
	}

	if len(c.Columns) == 0 {
		return fmt.Errorf("no columns declared")
	}
	seen := make(map[string]bool, len(c.Columns))
	for i, column := range c.Columns {
		if column.Reference == "" {
			return fmt.Errorf("column %d has no reference", i+1)
		}
		if seen[column.Reference] {
			return fmt.Errorf("duplicate column reference %q", column.Reference)
		}
		seen[column.Reference] = true
	}

	switch {
	case c.Data == "" && c.SQL == nil:
		return fmt.Errorf("one of data or sql is required")
	case c.Data != "" && c.SQL != nil:
		return fmt.Errorf("data and sql are mutually exclusive")
	case c.SQL != nil && (c.SQL.Database == "" || c.SQL.Query == ""):
		return fmt.Errorf("sql needs both database and query")
	}
	return nil
}

// resolvePath makes a path from the config relative to the config's
// directory.
func (c *Config) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.path == "" {
		return path
	}
	return filepath.Join(filepath.Dir(c.path), path)
}

// Collator returns the collator for the configured locale, or nil when no
// locale is set.
func (c *Config) Collator() (*collate.Collator, error) {
	if c.Table.Locale == "" {
		return nil, nil
	}
	tag, err := language.Parse(c.Table.Locale)
	if err != nil {
		return nil, configError("config.Collator", errors.KindConfig, c.path, fmt.Errorf("invalid locale %q: %w", c.Table.Locale, err))
	}
	return collate.New(tag), nil
}

// ColumnSpecs returns the column declarations as table children.
func (c *Config) ColumnSpecs() []core.Widget {
	children := make([]core.Widget, len(c.Columns))
	for i, column := range c.Columns {
		children[i] = table.ColumnSpec{
			Reference: column.Reference,
			Label:     column.Label,
			CellClass: column.CellClass.Spec(),
			Force:     column.Force,
			Props:     column.Props,
		}
	}
	return children
}

// Build returns the table widget showing records.
func (c *Config) Build(records []table.Record) (table.Table, error) {
	collator, err := c.Collator()
	if err != nil {
		return table.Table{}, err
	}
	return table.Table{
		Data:      records,
		ClassName: c.Table.ClassName,
		RowClass:  c.Table.RowClass.Spec(),
		Children:  c.ColumnSpecs(),
		Collator:  collator,
	}, nil
}

func configError(op string, kind errors.ErrorKind, path string, err error) *errors.TableError {
	return &errors.TableError{
		Op:        op,
		Kind:      kind,
		Path:      path,
		Err:       err,
		Timestamp: time.Now(),
	}
}
