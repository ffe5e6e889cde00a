package migrations

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/pkg/config"
)

func newTestMigrator(t *testing.T) (*Migrator, *sqlite.Client, string) {
	t.Helper()

	dir := t.TempDir()
	client, err := sqlite.Open(&config.DatabaseConfig{File: filepath.Join(dir, "clinic.db"), BusyTimeoutMS: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	migDir := filepath.Join(dir, "migrations")
	require.NoError(t, os.MkdirAll(migDir, 0o755))
	return NewMigrator(client, migDir), client, migDir
}

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestMigrator_BaseSchemaIsIdempotent(t *testing.T) {
	m, client, _ := newTestMigrator(t)
	ctx := context.Background()

	require.NoError(t, m.EnsureBaseSchema(ctx))
	require.NoError(t, m.EnsureBaseSchema(ctx))

	cols, err := client.Columns(ctx, "appointments")
	require.NoError(t, err)
	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "updated_at")
}

func TestMigrator_Load(t *testing.T) {
	m, _, dir := newTestMigrator(t)

	writeMigration(t, dir, "20240102000000_b.sql", "SELECT 1;")
	writeMigration(t, dir, "20240101000000_a.sql", "SELECT 1;")
	writeMigration(t, dir, ".hidden.sql", "SELECT 1;")
	writeMigration(t, dir, "README.md", "notes")

	migs, err := m.Load()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "20240101000000_a.sql", migs[0].Name)
	assert.Equal(t, "20240102000000_b.sql", migs[1].Name)

	t.Run("missing directory has nothing to apply", func(t *testing.T) {
		migs, err := NewMigrator(nil, filepath.Join(dir, "absent")).Load()
		require.NoError(t, err)
		assert.Empty(t, migs)
	})
}

func TestMigrator_Up(t *testing.T) {
	m, client, dir := newTestMigrator(t)
	ctx := context.Background()
	require.NoError(t, m.EnsureBaseSchema(ctx))

	writeMigration(t, dir, "20240101000000_add_insurance.sql",
		"ALTER TABLE patients ADD COLUMN insurance_no TEXT;")
	writeMigration(t, dir, "20240102000000_add_room.sql",
		"ALTER TABLE appointments ADD COLUMN room TEXT;\nCREATE INDEX idx_appointments_room ON appointments (room);")

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101000000_add_insurance.sql", "20240102000000_add_room.sql"}, applied)

	cols, err := client.Columns(ctx, "patients")
	require.NoError(t, err)
	assert.Contains(t, cols, "insurance_no")

	t.Run("second run applies nothing", func(t *testing.T) {
		applied, err := m.Up(ctx)
		require.NoError(t, err)
		assert.Empty(t, applied)
	})

	t.Run("failing file is rolled back and stops the run", func(t *testing.T) {
		writeMigration(t, dir, "20240103000000_broken.sql",
			"ALTER TABLE doctors ADD COLUMN room TEXT;\nALTER TABLE nowhere ADD COLUMN x TEXT;")
		writeMigration(t, dir, "20240104000000_later.sql", "ALTER TABLE doctors ADD COLUMN later TEXT;")

		applied, err := m.Up(ctx)
		assert.Error(t, err)
		assert.Empty(t, applied)

		cols, err := client.Columns(ctx, "doctors")
		require.NoError(t, err)
		assert.NotContains(t, cols, "room")
		assert.NotContains(t, cols, "later")

		statuses, err := m.Status(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 4)
		assert.True(t, statuses[1].Applied)
		assert.NotEmpty(t, statuses[1].AppliedAt)
		assert.False(t, statuses[2].Applied)
		assert.False(t, statuses[3].Applied)
	})
}

func TestMigrator_Create(t *testing.T) {
	m, _, dir := newTestMigrator(t)
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	path, err := m.Create("Add Room Number", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240601093000_add_room_number.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- Migration: Add Room Number")
	assert.Contains(t, string(body), "-- Created at: 2024-06-01 09:30:00")

	t.Run("template alone applies cleanly", func(t *testing.T) {
		applied, err := m.Up(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"20240601093000_add_room_number.sql"}, applied)
	})

	_, err = m.Create("  !!  ", now)
	assert.Error(t, err)
}

func TestMigrator_ExportSchema(t *testing.T) {
	m, _, _ := newTestMigrator(t)
	ctx := context.Background()
	require.NoError(t, m.EnsureBaseSchema(ctx))

	var buf bytes.Buffer
	require.NoError(t, m.ExportSchema(ctx, &buf))

	var schema map[string]sqlite.TableInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &schema))
	assert.Contains(t, schema, "patients")
	assert.Contains(t, schema["accounts"].SQL, "CREATE TABLE")
	assert.Equal(t, "setting_key", schema["app_settings"].Columns[0])
	assert.NotContains(t, schema, "sqlite_sequence")
}
