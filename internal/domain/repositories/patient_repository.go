package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// PatientRepository defines the interface for patient data operations
type PatientRepository interface {
	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id int64) (*entities.Patient, error)

	// GetByNationalID retrieves a patient by national id
	GetByNationalID(ctx context.Context, nationalID string) (*entities.Patient, error)

	// List retrieves every patient
	List(ctx context.Context) ([]*entities.Patient, error)

	// Search matches term against name parts, national id and hometown
	Search(ctx context.Context, term string) ([]*entities.Patient, error)

	// Create inserts a patient and assigns its ID
	Create(ctx context.Context, patient *entities.Patient) error

	// Update writes every field of an existing patient
	Update(ctx context.Context, patient *entities.Patient) error

	// Delete removes a patient and reports whether it existed
	Delete(ctx context.Context, id int64) (bool, error)

	// Count counts patients
	Count(ctx context.Context) (int64, error)
}
