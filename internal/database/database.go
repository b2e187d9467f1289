// Package database opens the gorm connection and owns the schema lifecycle.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"recshelf/internal/config"
	"recshelf/internal/middleware"
	"recshelf/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger routes gorm output through slog so SQL logs carry request ids.
type GormLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// NewGormLogger logs errors and slow queries only.
func NewGormLogger(l *slog.Logger) *GormLogger {
	return &GormLogger{
		logger: l,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.Config.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.Config.LogLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs failed statements at error level and slow ones at warn level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "GORM query error", append(attrs, slog.String("error", err.Error()))...)
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Config.LogLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "GORM slow query", attrs...)
	case l.Config.LogLevel >= logger.Info:
		l.logger.InfoContext(ctx, "GORM query", attrs...)
	}
}

// ConnectOptions tunes Connect for tools that manage the schema themselves.
type ConnectOptions struct {
	ApplySchema bool
}

// Connect opens the configured database and applies the schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return ConnectWithOptions(cfg, ConnectOptions{ApplySchema: true})
}

// ConnectWithOptions opens the configured database.
func ConnectWithOptions(cfg *config.Config, opts ConnectOptions) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		db, err = OpenSQLite(sqliteDSN(cfg.DBSQLitePath))
	default:
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
			Logger:  NewGormLogger(middleware.Logger),
			NowFunc: nowUTC,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Use(observability.QueryMetrics{}); err != nil {
		return nil, fmt.Errorf("register query metrics: %w", err)
	}

	if cfg.DBDriver != "sqlite" {
		if err := configurePool(db, cfg); err != nil {
			return nil, err
		}
	}

	middleware.Logger.Info("Database connected", slog.String("driver", cfg.DBDriver))

	if opts.ApplySchema {
		if err := ApplySchema(context.Background(), db, cfg); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return db, nil
}

// OpenSQLite opens a sqlite database with foreign keys enforced. A single
// connection keeps shared in-memory databases consistent.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  NewGormLogger(middleware.Logger),
		NowFunc: nowUTC,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on"
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Ping checks the connection for readiness checks.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
