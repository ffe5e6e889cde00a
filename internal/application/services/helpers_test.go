package services_test

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/adapters/database"
	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/migrations"
	"github.com/CoderFake/healthcare-system/pkg/config"
)

type testEnv struct {
	cfg      *config.Config
	client   *sqlite.Client
	store    *database.Store
	migrator *migrations.Migrator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{Name: "clinic", Env: "test"},
		Database: config.DatabaseConfig{
			File:          filepath.Join(dir, "clinic.db"),
			MigrationsDir: filepath.Join(dir, "migrations"),
			BackupDir:     filepath.Join(dir, "backups"),
			BusyTimeoutMS: 1000,
		},
		Admin: config.AdminConfig{
			Username: "admin",
			Password: "123456",
			FullName: "Administrator",
			Gender:   "male",
			Phone:    "0123456789",
			Email:    "admin@example.com",
		},
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTLHours: 1},
		Schedule: config.ScheduleConfig{
			SlotStartHour:            8,
			SlotEndHour:              17,
			SlotIntervalMinutes:      30,
			MaxAppointmentsPerDay:    20,
			MaxAppointmentsPerDoctor: 10,
		},
	}

	client, err := sqlite.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	migrator := migrations.NewMigrator(client, cfg.Database.MigrationsDir)
	require.NoError(t, migrator.EnsureBaseSchema(context.Background()))

	return &testEnv{cfg: cfg, client: client, store: database.NewStore(client), migrator: migrator}
}

func adminContext() context.Context {
	return services.WithIdentity(context.Background(), &services.Identity{Username: "admin", Role: entities.RoleAdmin})
}

func (e *testEnv) patient(t *testing.T, nationalID string) *entities.Patient {
	t.Helper()
	p, err := services.NewPatientService(e.store).Create(context.Background(), entities.Fields{
		"first_name":  "Nguyen",
		"last_name":   "An",
		"national_id": nationalID,
		"gender":      "male",
		"birth_date":  "2000-01-01",
		"hometown":    "Hue",
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) doctor(t *testing.T, nationalID, specialty string) *entities.Doctor {
	t.Helper()
	d, err := services.NewDoctorService(e.store).Create(context.Background(), entities.Fields{
		"first_name":  "Tran",
		"last_name":   "Binh",
		"national_id": nationalID,
		"gender":      "female",
		"birth_date":  "1980-04-02",
		"specialty":   specialty,
	})
	require.NoError(t, err)
	return d
}

func (e *testEnv) appointments() *services.AppointmentService {
	return services.NewAppointmentService(e.store, e.cfg.Schedule, nil)
}

func booking(patientID, doctorID int64, date, at string) entities.Fields {
	return entities.Fields{
		"patient_id": strconv.FormatInt(patientID, 10),
		"doctor_id":  strconv.FormatInt(doctorID, 10),
		"date":       date,
		"time":       at,
	}
}
