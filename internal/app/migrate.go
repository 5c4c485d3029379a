package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/dreamboard-backend/migrations"
)

// runMigrations applies pending goose migrations from the embedded
// migration set. goose requires *sql.DB, so a short-lived database/sql
// connection is opened next to the pgx pool.
func runMigrations(ctx context.Context, logger *slog.Logger, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	if len(results) > 0 {
		logger.InfoContext(ctx, "migrations applied", slog.Int("count", len(results)))
	}

	return nil
}
