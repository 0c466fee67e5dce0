package db_client

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations executes all embedded .sql files in name order. Statements
// are idempotent (IF NOT EXISTS) so re-running on boot is safe.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		zap.L().Debug("migration.applied", zap.String("file", e.Name()))
	}
	return nil
}
