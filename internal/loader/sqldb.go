package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/fatih/color"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const insertBatchSize = 500

// loadSQL serves the database/sql providers (mysql, sqlite) with batched
// multi-row inserts built by squirrel.
func (l *Loader) loadSQL(ctx context.Context, driver string) (int64, error) {
	db, err := sql.Open(driver, l.url)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := waitForDB(ctx, db.PingContext); err != nil {
		return 0, err
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	var total int64
	for _, table := range emit.Tables() {
		rows, err := l.readTable(table)
		if err != nil {
			return total, err
		}

		target := TargetTable(table.Name)
		color.Cyan("  📦 Loading %s → %s (%d rows)...", table.File, target, len(rows))

		if _, err := db.ExecContext(ctx, dropSQL(table)); err != nil {
			return total, fmt.Errorf("failed to drop %s: %w", target, err)
		}
		if _, err := db.ExecContext(ctx, createSQL(table, l.provider)); err != nil {
			return total, fmt.Errorf("failed to create %s: %w", target, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return total, fmt.Errorf("failed to begin transaction: %w", err)
		}

		for start := 0; start < len(rows); start += insertBatchSize {
			stop := start + insertBatchSize
			if stop > len(rows) {
				stop = len(rows)
			}

			ib := builder.Insert(target).Columns(table.Header()...)
			for _, row := range rows[start:stop] {
				ib = ib.Values(row...)
			}

			query, args, err := ib.ToSql()
			if err != nil {
				tx.Rollback()
				return total, fmt.Errorf("failed to build insert for %s: %w", target, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				tx.Rollback()
				return total, fmt.Errorf("failed to insert into %s: %w", target, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return total, fmt.Errorf("failed to commit %s: %w", target, err)
		}
		total += int64(len(rows))
	}

	return total, nil
}
