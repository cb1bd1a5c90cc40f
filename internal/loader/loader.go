package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

// Loader bulk-copies an emitted dataset into a relational store with replace
// semantics: each raw_* table is dropped, recreated and loaded from scratch,
// never appended to.
type Loader struct {
	provider string
	url      string
	dir      string
}

func New(provider, url, dir string) *Loader {
	return &Loader{provider: provider, url: url, dir: dir}
}

// TargetTable is the warehouse-side name for a dataset.
func TargetTable(dataset string) string {
	return "raw_" + dataset
}

// Load reads every CSV named in the manifest and loads it into the target
// database. Returns the total row count loaded.
func (l *Loader) Load(ctx context.Context) (int64, error) {
	if _, err := emit.ReadManifest(l.dir); err != nil {
		return 0, fmt.Errorf("no dataset found in %s: %w", l.dir, err)
	}

	switch l.provider {
	case "postgresql", "postgres":
		return l.loadPostgres(ctx)
	case "mysql":
		return l.loadSQL(ctx, "mysql")
	case "sqlite", "sqlite3":
		return l.loadSQL(ctx, "sqlite3")
	default:
		return 0, fmt.Errorf("unsupported database provider: %s", l.provider)
	}
}

// readTable parses one CSV into typed rows, checking the header against the
// output contract first.
func (l *Loader) readTable(table emit.Table) ([][]any, error) {
	file, err := os.Open(filepath.Join(l.dir, table.File))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", table.File, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table.File, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is missing its header row", table.File)
	}

	header := records[0]
	expected := table.Header()
	if len(header) != len(expected) {
		return nil, fmt.Errorf("%s has %d columns, expected %d", table.File, len(header), len(expected))
	}
	for i, name := range expected {
		if header[i] != name {
			return nil, fmt.Errorf("%s column %d is %q, expected %q", table.File, i, header[i], name)
		}
	}

	rows := make([][]any, 0, len(records)-1)
	for n, record := range records[1:] {
		row := make([]any, len(table.Columns))
		for i, col := range table.Columns {
			val, err := parseValue(col, record[i])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", table.File, n+1, col.Name, err)
			}
			row[i] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseValue(col emit.Column, s string) (any, error) {
	if s == "" && col.Nullable {
		return nil, nil
	}
	switch col.Kind {
	case emit.KindText:
		return s, nil
	case emit.KindDate:
		return time.Parse("2006-01-02", s)
	case emit.KindTimestamp:
		return time.Parse("2006-01-02 15:04:05", s)
	case emit.KindMoney, emit.KindFloat:
		return strconv.ParseFloat(s, 64)
	case emit.KindInt:
		return strconv.ParseInt(s, 10, 64)
	case emit.KindBool:
		return strconv.ParseBool(s)
	default:
		return nil, fmt.Errorf("unknown column kind %d", col.Kind)
	}
}

// columnType maps a contract kind to provider DDL.
func columnType(kind emit.Kind, provider string) string {
	sqlite := provider == "sqlite" || provider == "sqlite3"
	switch kind {
	case emit.KindDate:
		if sqlite {
			return "TEXT"
		}
		return "DATE"
	case emit.KindTimestamp:
		if sqlite {
			return "TEXT"
		}
		if provider == "mysql" {
			return "DATETIME"
		}
		return "TIMESTAMP"
	case emit.KindMoney:
		if sqlite {
			return "REAL"
		}
		return "NUMERIC(12,2)"
	case emit.KindFloat:
		if sqlite {
			return "REAL"
		}
		return "NUMERIC(8,1)"
	case emit.KindInt:
		return "INTEGER"
	case emit.KindBool:
		if provider == "mysql" {
			return "TINYINT(1)"
		}
		if sqlite {
			return "INTEGER"
		}
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func createSQL(table emit.Table, provider string) string {
	ddl := "CREATE TABLE " + TargetTable(table.Name) + " ("
	for i, col := range table.Columns {
		if i > 0 {
			ddl += ", "
		}
		ddl += col.Name + " " + columnType(col.Kind, provider)
		if !col.Nullable {
			ddl += " NOT NULL"
		}
	}
	return ddl + ")"
}

func dropSQL(table emit.Table) string {
	return "DROP TABLE IF EXISTS " + TargetTable(table.Name)
}

// waitForDB pings with backoff so a warehouse that is still starting up
// (docker compose) does not fail the load immediately.
func waitForDB(ctx context.Context, ping func(context.Context) error) error {
	const maxRetries = 10
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		color.Yellow("⏳ Waiting for database... (%d/%d)", i+1, maxRetries)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	return fmt.Errorf("database never became ready: %w", err)
}
