package database

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
)

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	mapper *Mapper[entities.Patient, *entities.Patient]
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(exec sqlite.Executor) repositories.PatientRepository {
	return &PatientAdapter{mapper: NewMapper[entities.Patient](exec)}
}

func (a *PatientAdapter) GetByID(ctx context.Context, id int64) (*entities.Patient, error) {
	return a.mapper.Find(ctx, id)
}

func (a *PatientAdapter) GetByNationalID(ctx context.Context, nationalID string) (*entities.Patient, error) {
	rows, err := a.mapper.Where(ctx, Eq("national_id", nationalID))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("id")})
}

// Search matches term against name parts, national id and hometown
func (a *PatientAdapter) Search(ctx context.Context, term string) ([]*entities.Patient, error) {
	return a.mapper.WhereOrdered(ctx, []Order{Asc("id")}, AnyOf(
		Contains("first_name", term),
		Contains("last_name", term),
		Contains("national_id", term),
		Contains("hometown", term),
	))
}

func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	return a.mapper.Save(ctx, patient)
}

func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	return a.mapper.Save(ctx, patient)
}

func (a *PatientAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	return a.mapper.DeleteByKey(ctx, id)
}

func (a *PatientAdapter) Count(ctx context.Context) (int64, error) {
	return a.mapper.Count(ctx)
}
