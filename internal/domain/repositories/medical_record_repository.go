package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// MedicalRecordRepository defines the interface for medical record data operations
type MedicalRecordRepository interface {
	// GetByID retrieves a medical record by ID
	GetByID(ctx context.Context, id int64) (*entities.MedicalRecord, error)

	// GetDetail retrieves a medical record with patient and doctor names
	GetDetail(ctx context.Context, id int64) (*entities.MedicalRecordDetail, error)

	// ListByPatient retrieves a patient's records, newest visit first
	ListByPatient(ctx context.Context, patientID int64) ([]*entities.MedicalRecordDetail, error)

	// ListByDoctor retrieves a doctor's records, newest visit first
	ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.MedicalRecordDetail, error)

	// Create inserts a record and assigns its ID
	Create(ctx context.Context, record *entities.MedicalRecord) error

	// Update writes every field of an existing record
	Update(ctx context.Context, record *entities.MedicalRecord) error

	// Delete removes a record and reports whether it existed
	Delete(ctx context.Context, id int64) (bool, error)
}
