package database

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
)

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	mapper *Mapper[entities.Doctor, *entities.Doctor]
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(exec sqlite.Executor) repositories.DoctorRepository {
	return &DoctorAdapter{mapper: NewMapper[entities.Doctor](exec)}
}

func (a *DoctorAdapter) GetByID(ctx context.Context, id int64) (*entities.Doctor, error) {
	return a.mapper.Find(ctx, id)
}

func (a *DoctorAdapter) GetByNationalID(ctx context.Context, nationalID string) (*entities.Doctor, error) {
	rows, err := a.mapper.Where(ctx, Eq("national_id", nationalID))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("id")})
}

// Search matches term against name parts, national id and specialty
func (a *DoctorAdapter) Search(ctx context.Context, term string) ([]*entities.Doctor, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("id")}, AnyOf(
		Contains("first_name", term),
		Contains("last_name", term),
		Contains("national_id", term),
		Contains("specialty", term),
	))
}

func (a *DoctorAdapter) ListBySpecialty(ctx context.Context, specialty string) ([]*entities.Doctor, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("last_name"), Asc("first_name")}, Eq("specialty", specialty))
}

func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	return a.mapper.Save(ctx, doctor)
}

func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	return a.mapper.Save(ctx, doctor)
}

func (a *DoctorAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	return a.mapper.DeleteByKey(ctx, id)
}

func (a *DoctorAdapter) Count(ctx context.Context) (int64, error) {
	return a.mapper.Count(ctx)
}
