package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"recshelf/internal/config"
	"recshelf/internal/middleware"

	"gorm.io/gorm"
)

const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaStatus describes what ApplySchema would do against db.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

func schemaMode(cfg *config.Config) string {
	// The SQL migrations are written for postgres.
	if cfg.DBDriver == "sqlite" {
		return SchemaModeAuto
	}
	if cfg.DBSchemaMode == "" {
		return SchemaModeHybrid
	}
	return cfg.DBSchemaMode
}

func schemaPolicy(cfg *config.Config) (runSQL, runAuto bool, err error) {
	mode := schemaMode(cfg)
	switch mode {
	case SchemaModeSQL:
		return true, false, nil
	case SchemaModeAuto:
		if cfg.IsProduction() && cfg.DBDriver != "sqlite" {
			return false, false, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q", cfg.Env)
		}
		return false, true, nil
	case SchemaModeHybrid:
		return true, !cfg.IsProduction(), nil
	default:
		return false, false, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
}

// AutoMigrate creates or updates every persistent table from the models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// ApplySchema runs SQL migrations and/or AutoMigrate according to the mode.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	runSQL, runAuto, err := schemaPolicy(cfg)
	if err != nil {
		return err
	}

	if runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if runAuto {
		middleware.Logger.InfoContext(ctx, "Running GORM AutoMigrate",
			slog.String("mode", schemaMode(cfg)), slog.String("env", cfg.Env))
		if err := AutoMigrate(db.WithContext(ctx)); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// GetSchemaStatus reports the schema plan and pending migrations.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	runSQL, runAuto, err := schemaPolicy(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               schemaMode(cfg),
		Environment:        cfg.Env,
		WillRunSQL:         runSQL,
		WillRunAutoMigrate: runAuto,
	}
	if !runSQL {
		return status, nil
	}

	applied, err := NewMigrationStore(db).AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	all, err := Migrations()
	if err != nil {
		return nil, err
	}
	for _, m := range all {
		if !slices.Contains(applied, m.Version) {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}
