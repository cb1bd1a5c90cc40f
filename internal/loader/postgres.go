package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Metrik-Labs-HQ/gtmforge/internal/emit"
)

func (l *Loader) loadPostgres(ctx context.Context) (int64, error) {
	config, err := pgxpool.ParseConfig(l.url)
	if err != nil {
		return 0, fmt.Errorf("failed to parse connection URL: %w", err)
	}
	config.MaxConns = 2
	config.MaxConnLifetime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return 0, fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool.Ping); err != nil {
		return 0, err
	}

	var total int64
	for _, table := range emit.Tables() {
		rows, err := l.readTable(table)
		if err != nil {
			return total, err
		}

		target := TargetTable(table.Name)
		color.Cyan("  📦 Loading %s → %s (%d rows)...", table.File, target, len(rows))

		if _, err := pool.Exec(ctx, dropSQL(table)); err != nil {
			return total, fmt.Errorf("failed to drop %s: %w", target, err)
		}
		if _, err := pool.Exec(ctx, createSQL(table, l.provider)); err != nil {
			return total, fmt.Errorf("failed to create %s: %w", target, err)
		}

		copied, err := pool.CopyFrom(ctx,
			pgx.Identifier{target},
			table.Header(),
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return total, fmt.Errorf("failed to copy into %s: %w", target, err)
		}
		total += copied
	}

	return total, nil
}
