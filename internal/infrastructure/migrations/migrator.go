package migrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
)

// Migration is a SQL script loaded from the migrations directory
type Migration struct {
	Name string
	SQL  string
}

// MigrationStatus reports whether a migration file has been applied
type MigrationStatus struct {
	Name      string `json:"name"`
	Applied   bool   `json:"applied"`
	AppliedAt string `json:"applied_at,omitempty"`
}

// Migrator applies SQL migration files in filename order and records them
type Migrator struct {
	client *sqlite.Client
	dir    string
}

// NewMigrator creates a Migrator reading files from dir
func NewMigrator(client *sqlite.Client, dir string) *Migrator {
	return &Migrator{client: client, dir: dir}
}

// EnsureTable creates the migrations tracking table if needed
func (m *Migrator) EnsureTable(ctx context.Context) error {
	_, err := m.client.Execute(ctx, migrationsTable)
	return err
}

// EnsureBaseSchema creates the application tables if needed
func (m *Migrator) EnsureBaseSchema(ctx context.Context) error {
	_, err := m.client.Execute(ctx, BaseSchema)
	return err
}

// Load reads every non-hidden .sql file in the directory sorted by filename.
// A missing directory means there is nothing to apply.
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations directory %s: %w", m.dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration file %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Name: name, SQL: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})
	return migrations, nil
}

// Applied returns applied migration names mapped to when they ran
func (m *Migrator) Applied(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Name      string `db:"migration_name"`
		AppliedAt string `db:"applied_at"`
	}
	err := m.client.From("migrations").
		Select("migration_name", "applied_at").
		Order(goqu.C("id").Asc()).
		ScanStructsContext(ctx, &rows)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to read applied migrations", err)
	}

	applied := make(map[string]string, len(rows))
	for _, r := range rows {
		applied[r.Name] = r.AppliedAt
	}
	return applied, nil
}

// Up applies pending migrations in order. Each file and its tracking row share
// one transaction; the first failure stops the run. Returns the names applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	logger := observability.LoggerFromContext(ctx)

	if err := m.EnsureTable(ctx); err != nil {
		return nil, err
	}

	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, mig := range migrations {
		if _, ok := applied[mig.Name]; ok {
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			logger.Error().Err(err).Str("migration", mig.Name).Msg("migration failed")
			return done, fmt.Errorf("apply migration %s: %w", mig.Name, err)
		}
		logger.Info().Str("migration", mig.Name).Msg("migration applied")
		done = append(done, mig.Name)
	}
	return done, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.client.WithTx(ctx, func(tx *sqlite.Tx) error {
		if strings.TrimSpace(stripComments(mig.SQL)) != "" {
			if _, err := tx.Execute(ctx, mig.SQL); err != nil {
				return err
			}
		}
		_, err := tx.Insert(ctx, "migrations", goqu.Record{
			"migration_name": mig.Name,
			"applied_at":     utils.Now(),
		})
		return err
	})
}

// Status lists every migration file with its applied state
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.EnsureTable(ctx); err != nil {
		return nil, err
	}

	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, mig := range migrations {
		at, ok := applied[mig.Name]
		statuses = append(statuses, MigrationStatus{Name: mig.Name, Applied: ok, AppliedAt: at})
	}
	return statuses, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

// Create writes an empty migration named <YYYYMMDDHHMMSS>_<name>.sql and returns its path
func (m *Migrator) Create(name string, now time.Time) (string, error) {
	slug := strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_"), "_")
	if slug == "" {
		return "", apperrors.NewValidationError("migration name is required")
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations directory: %w", err)
	}

	path := filepath.Join(m.dir, now.Format("20060102150405")+"_"+slug+".sql")
	body := fmt.Sprintf("-- Migration: %s\n-- Created at: %s\n\n-- Write your SQL migration here\n\n",
		name, now.Format(utils.TimestampLayout))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %s: %w", path, err)
	}
	return path, nil
}

// ExportSchema writes every table's DDL and columns as indented JSON
func (m *Migrator) ExportSchema(ctx context.Context, w io.Writer) error {
	tables, err := m.client.Tables(ctx)
	if err != nil {
		return err
	}

	schema := make(map[string]sqlite.TableInfo, len(tables))
	for _, t := range tables {
		schema[t.Name] = t
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(schema)
}

func stripComments(script string) string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
