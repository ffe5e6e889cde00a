package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	// GetByID retrieves a doctor by ID
	GetByID(ctx context.Context, id int64) (*entities.Doctor, error)

	// GetByNationalID retrieves a doctor by national id
	GetByNationalID(ctx context.Context, nationalID string) (*entities.Doctor, error)

	// List retrieves every doctor
	List(ctx context.Context) ([]*entities.Doctor, error)

	// Search matches term against name parts, national id and specialty
	Search(ctx context.Context, term string) ([]*entities.Doctor, error)

	// ListBySpecialty retrieves doctors of one specialty
	ListBySpecialty(ctx context.Context, specialty string) ([]*entities.Doctor, error)

	// Create inserts a doctor and assigns its ID
	Create(ctx context.Context, doctor *entities.Doctor) error

	// Update writes every field of an existing doctor
	Update(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes a doctor and reports whether it existed
	Delete(ctx context.Context, id int64) (bool, error)

	// Count counts doctors
	Count(ctx context.Context) (int64, error)
}
