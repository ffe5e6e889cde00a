package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/migrations"
	"github.com/CoderFake/healthcare-system/pkg/config"
)

func newTestStore(t *testing.T) (*Store, *sqlite.Client) {
	t.Helper()

	dir := t.TempDir()
	client, err := sqlite.Open(&config.DatabaseConfig{
		File:          filepath.Join(dir, "clinic.db"),
		BackupDir:     filepath.Join(dir, "backups"),
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, migrations.NewMigrator(client, filepath.Join(dir, "migrations")).EnsureBaseSchema(context.Background()))
	return NewStore(client), client
}

func strPtr(s string) *string { return &s }

func seedDoctor(t *testing.T, store *Store, nationalID, specialty string) *entities.Doctor {
	t.Helper()
	d := &entities.Doctor{
		FirstName:  "Tran",
		LastName:   "Binh",
		NationalID: nationalID,
		Gender:     "female",
		BirthDate:  "1980-04-02",
		Specialty:  specialty,
	}
	require.NoError(t, store.Doctors().Create(context.Background(), d))
	return d
}

func seedPatient(t *testing.T, store *Store, nationalID string) *entities.Patient {
	t.Helper()
	p := &entities.Patient{
		FirstName:  "Nguyen",
		LastName:   "An",
		NationalID: nationalID,
		Gender:     "male",
		BirthDate:  "2000-01-01",
		Hometown:   strPtr("Hue"),
	}
	require.NoError(t, store.Patients().Create(context.Background(), p))
	return p
}

func seedAppointment(t *testing.T, store *Store, patientID, doctorID int64, date, time string) *entities.Appointment {
	t.Helper()
	a := &entities.Appointment{PatientID: patientID, DoctorID: doctorID, Date: date, Time: time}
	require.NoError(t, store.Appointments().Create(context.Background(), a))
	return a
}
