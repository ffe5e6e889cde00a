package database

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
)

// registry builds repositories over one executor
type registry struct {
	exec sqlite.Executor
}

func (r registry) Accounts() repositories.AccountRepository { return NewAccountAdapter(r.exec) }
func (r registry) Doctors() repositories.DoctorRepository   { return NewDoctorAdapter(r.exec) }
func (r registry) Patients() repositories.PatientRepository { return NewPatientAdapter(r.exec) }
func (r registry) Appointments() repositories.AppointmentRepository {
	return NewAppointmentAdapter(r.exec)
}
func (r registry) MedicalRecords() repositories.MedicalRecordRepository {
	return NewMedicalRecordAdapter(r.exec)
}
func (r registry) Settings() repositories.SettingRepository { return NewSettingAdapter(r.exec) }

// Store implements repositories.Store on top of the sqlite client
type Store struct {
	registry
	client *sqlite.Client
}

var _ repositories.Store = (*Store)(nil)

// NewStore creates a store whose repositories write through client
func NewStore(client *sqlite.Client) *Store {
	return &Store{registry: registry{exec: client}, client: client}
}

// WithinTx runs fn with repositories bound to one transaction
func (s *Store) WithinTx(ctx context.Context, fn func(tx repositories.Registry) error) error {
	return s.client.WithTx(ctx, func(tx *sqlite.Tx) error {
		return fn(registry{exec: tx})
	})
}
