package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/internal/version"
)

// The migration system is intentionally small: a fresh database gets the
// full LATEST.sql schema for its driver, and the applied schema version is
// recorded in system_setting. Incremental migration files slot in under
// store/migration/{driver}/{version}/ once a second schema version exists.

//go:embed migration
var migrationFS embed.FS

const (
	// LatestSchemaFileName is the full schema applied to new installations.
	LatestSchemaFileName = "LATEST.sql"

	schemaVersionSettingKey = "schema_version"
)

// Migrate initializes the database schema if needed and records the
// schema version.
func (s *Store) Migrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database initialization")
	}
	if initialized {
		return nil
	}

	filePath := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file %q", filePath)
	}

	if _, err := s.driver.GetDB().ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}

	currentVersion := version.GetCurrentVersion(s.profile.Mode)
	stmt := "INSERT INTO system_setting (name, value) VALUES (" + s.placeholderPair() + ")"
	if _, err := s.driver.GetDB().ExecContext(ctx, stmt, schemaVersionSettingKey, currentVersion); err != nil {
		return errors.Wrap(err, "failed to record schema version")
	}

	slog.Info("database initialized",
		slog.String("driver", s.profile.Driver),
		slog.String("schema_version", currentVersion),
	)
	return nil
}

func (s *Store) placeholderPair() string {
	if s.profile.Driver == "postgres" {
		return "$1, $2"
	}
	return "?, ?"
}
