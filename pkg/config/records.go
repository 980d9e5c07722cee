package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/datatable/pkg/errors"
	"github.com/go-drift/datatable/pkg/table"
)

// LoadRecords reads the records the config points at.
func (c *Config) LoadRecords(ctx context.Context) ([]table.Record, error) {
	if c.SQL != nil {
		return QueryRecords(ctx, c.resolvePath(c.SQL.Database), c.SQL.Query)
	}
	return ReadRecords(c.resolvePath(c.Data))
}

// ReadRecords decodes a file of records. The extension selects the format:
// .json holds an array of objects, .yaml/.yml a sequence of mappings and
// .toml an array of [[records]] tables.
func ReadRecords(path string) ([]table.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.ReadRecords", errors.KindConfig, path, fmt.Errorf("failed to read data: %w", err))
	}

	var records []table.Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &records)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	case ".toml":
		var doc struct {
			Records []table.Record `toml:"records"`
		}
		err = toml.Unmarshal(data, &doc)
		records = doc.Records
	default:
		return nil, configError("config.ReadRecords", errors.KindConfig, path, fmt.Errorf("unsupported data format %q", ext))
	}
	if err != nil {
		return nil, configError("config.ReadRecords", errors.KindParsing, path, fmt.Errorf("failed to parse data: %w", err))
	}
	return records, nil
}

// QueryRecords runs query against the SQLite database at path and returns
// one record per row, keyed by column name. Text and blob columns become
// strings.
func QueryRecords(ctx context.Context, path, query string) ([]table.Record, error) {
	fail := func(kind errors.ErrorKind, err error) error {
		return configError("config.QueryRecords", kind, path, err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fail(errors.KindConfig, fmt.Errorf("failed to open database: %w", err))
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fail(errors.KindConfig, fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fail(errors.KindParsing, fmt.Errorf("query failed: %w", err))
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fail(errors.KindParsing, err)
	}

	var records []table.Record
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fail(errors.KindParsing, fmt.Errorf("scan row: %w", err))
		}
		record := make(table.Record, len(columns))
		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				record[name] = string(b)
				continue
			}
			record[name] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(errors.KindParsing, err)
	}
	return records, nil
}

// uriEscaper escapes the characters SQLite URI filenames treat as syntax.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// readOnlyDSN returns a read-only SQLite URI filename for path.
func readOnlyDSN(path string) string {
	return "file:" + uriEscaper.Replace(filepath.ToSlash(path)) + "?mode=ro"
}
