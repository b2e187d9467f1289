package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"recshelf/internal/middleware"

	"gorm.io/gorm"
)

// MigrationStore tracks which migrations have been applied.
type MigrationStore interface {
	AppliedVersions(ctx context.Context) ([]int, error)
	Apply(ctx context.Context, m Migration) error
	Revert(ctx context.Context, m Migration) error
}

type migrationStore struct {
	db *gorm.DB
}

// MigrationLog is a row of the migration_logs bookkeeping table.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

func (s *migrationStore) AppliedVersions(ctx context.Context) ([]int, error) {
	var versions []int
	err := s.db.WithContext(ctx).Model(&MigrationLog{}).Order("version ASC").Pluck("version", &versions).Error
	if err != nil {
		if isMissingTableError(err) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return versions, nil
}

func isMissingTableError(err error) bool {
	msg := err.Error()
	return (strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		strings.Contains(msg, "no such table")
}

// Apply runs the up script and records it in one transaction.
func (s *migrationStore) Apply(ctx context.Context, m Migration) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.UpScript).Error; err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m, err)
		}
		if err := tx.Create(&MigrationLog{Version: m.Version, Name: m.Name}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
	return nil
}

// Revert runs the down script and forgets the version in one transaction.
func (s *migrationStore) Revert(ctx context.Context, m Migration) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.DownScript).Error; err != nil {
			return fmt.Errorf("failed to run rollback SQL for migration %s: %w", m, err)
		}
		return tx.Where("version = ?", m.Version).Delete(&MigrationLog{}).Error
	})
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Migration rolled back", slog.Int("version", m.Version))
	return nil
}

const ensureMigrationLogTableSQL = `
CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// RunMigrations applies every pending embedded migration in version order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	all, err := Migrations()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(ensureMigrationLogTableSQL).Error; err != nil {
		return fmt.Errorf("failed to ensure migration logs table: %w", err)
	}

	store := NewMigrationStore(db)
	applied, err := store.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	if err := validateAppliedVersions(applied, all); err != nil {
		return err
	}

	for _, m := range all {
		if slices.Contains(applied, m.Version) {
			continue
		}
		middleware.Logger.InfoContext(ctx, "Applying migration", slog.String("migration", m.String()))
		if err := store.Apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func validateAppliedVersions(applied []int, registered []Migration) error {
	var unknown []string
	for _, version := range applied {
		known := slices.ContainsFunc(registered, func(m Migration) bool { return m.Version == version })
		if !known {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return fmt.Errorf("migration_logs contains versions unknown to this build: %s", strings.Join(unknown, ", "))
}

// ErrNotApplied is returned when rolling back a migration that never ran.
var ErrNotApplied = errors.New("migration has not been applied")

// RollbackMigration reverts one applied migration.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m, err := MigrationByVersion(version)
	if err != nil {
		return err
	}

	store := NewMigrationStore(db)
	applied, err := store.AppliedVersions(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("%s: %w", m, ErrNotApplied)
	}

	middleware.Logger.InfoContext(ctx, "Rolling back migration", slog.String("migration", m.String()))
	return store.Revert(ctx, *m)
}
