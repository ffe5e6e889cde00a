package repositories

import "context"

// Registry hands out repositories that share one executor
type Registry interface {
	Accounts() AccountRepository
	Doctors() DoctorRepository
	Patients() PatientRepository
	Appointments() AppointmentRepository
	MedicalRecords() MedicalRecordRepository
	Settings() SettingRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx Registry) error) error
}

// Store is a Registry that can also open transactions
type Store interface {
	Registry
	Transactor
}
