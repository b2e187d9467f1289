package database

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Migration is one versioned pair of SQL scripts.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var (
	loadOnce      sync.Once
	migrations    []Migration
	migrationsErr error
)

// Migrations returns the embedded migrations in version order.
func Migrations() ([]Migration, error) {
	loadOnce.Do(func() {
		migrations, migrationsErr = loadMigrations(migrationFS, "migrations")
	})
	return migrations, migrationsErr
}

// loadMigrations pairs NNNNNN_name.up.sql with NNNNNN_name.down.sql.
func loadMigrations(fsys embed.FS, dir string) ([]Migration, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var out []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		base := strings.TrimSuffix(name, ".up.sql")
		rawVersion, label, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: expected <version>_<name>.up.sql", name)
		}
		version, err := strconv.Atoi(rawVersion)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version: %w", name, err)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration version %d used by both %s and %s", version, prev, name)
		}
		seen[version] = name

		up, err := fsys.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		down, err := fsys.ReadFile(path.Join(dir, base+".down.sql"))
		if err != nil {
			return nil, fmt.Errorf("read down script for %s: %w", name, err)
		}

		out = append(out, Migration{
			Version:    version,
			Name:       label,
			UpScript:   string(up),
			DownScript: string(down),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// MigrationByVersion finds a registered migration.
func MigrationByVersion(version int) (*Migration, error) {
	all, err := Migrations()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Version == version {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("migration version %d not found", version)
}
