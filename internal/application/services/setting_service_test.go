package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

func TestSettingService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := services.NewSettingService(env.store.Settings())

	t.Run("an int round-trips as an int", func(t *testing.T) {
		setting, err := svc.Set(ctx, "max_appointments_per_day", 20, services.SetOptions{})
		require.NoError(t, err)
		assert.Equal(t, entities.SettingTypeInt, setting.Type)

		v, ok, err := svc.Get(ctx, "max_appointments_per_day")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 20, v)
		assert.Equal(t, 20, svc.GetInt(ctx, "max_appointments_per_day", 5))
	})

	t.Run("an explicit type overrides inference", func(t *testing.T) {
		_, err := svc.Set(ctx, "online_booking", "Yes", services.SetOptions{Type: entities.SettingTypeBool, Description: "Accept web bookings"})
		require.NoError(t, err)
		assert.True(t, svc.GetBool(ctx, "online_booking", false))

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "online_booking", all[1].Key)
		assert.Equal(t, "Accept web bookings", *all[1].Description)
	})

	t.Run("values that do not coerce are rejected", func(t *testing.T) {
		_, err := svc.Set(ctx, "max_appointments_per_day", "lots", services.SetOptions{Type: entities.SettingTypeInt})
		assert.Contains(t, apperrors.FieldErrors(err), "value")

		_, err = svc.Set(ctx, "x", 1, services.SetOptions{Type: "decimal"})
		assert.Contains(t, apperrors.FieldErrors(err), "type")

		_, err = svc.Set(ctx, " ", 1, services.SetOptions{})
		assert.Contains(t, apperrors.FieldErrors(err), "key")

		assert.Equal(t, 20, svc.GetInt(ctx, "max_appointments_per_day", 5))
	})

	t.Run("absent keys fall back to defaults", func(t *testing.T) {
		_, ok, err := svc.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 7, svc.GetInt(ctx, "missing", 7))
		assert.Equal(t, "fallback", svc.GetString(ctx, "missing", "fallback"))
		assert.True(t, svc.GetBool(ctx, "missing", true))
	})
}

func TestSetupService_Run(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	setup := services.NewSetupService(env.migrator, env.store, env.cfg)

	require.NoError(t, os.MkdirAll(env.cfg.Database.MigrationsDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.cfg.Database.MigrationsDir, "20240101000000_create_rooms.sql"),
		[]byte("CREATE TABLE rooms (id INTEGER PRIMARY KEY, name TEXT NOT NULL);"),
		0o644,
	))

	report, err := setup.Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.AdminCreated)
	assert.Len(t, report.Migrations, 1)
	assert.Contains(t, report.SettingsSeeded, services.SettingMaxAppointmentsPerDay)

	admin, err := env.store.Accounts().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CheckPassword("123456"))

	v, ok, err := services.NewSettingService(env.store.Settings()).Get(ctx, services.SettingMaxAppointmentsPerDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	t.Run("a second run changes nothing", func(t *testing.T) {
		again, err := setup.Run(ctx)
		require.NoError(t, err)
		assert.False(t, again.AdminCreated)
		assert.Empty(t, again.Migrations)
		assert.Empty(t, again.SettingsSeeded)
	})

	t.Run("seeded settings are not overwritten", func(t *testing.T) {
		_, err := services.NewSettingService(env.store.Settings()).Set(ctx, services.SettingMaxAppointmentsPerDay, 35, services.SetOptions{})
		require.NoError(t, err)
		_, err = setup.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 35, services.NewSettingService(env.store.Settings()).GetInt(ctx, services.SettingMaxAppointmentsPerDay, 0))
	})
}

func TestSetupService_InvalidAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Admin.Password = "123"

	report, err := services.NewSetupService(env.migrator, env.store, env.cfg).Run(context.Background())
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, report.AdminCreated)

	settings, err := env.store.Settings().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings)
}
