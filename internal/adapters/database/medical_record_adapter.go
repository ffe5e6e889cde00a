package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// MedicalRecordAdapter implements the MedicalRecordRepository interface
type MedicalRecordAdapter struct {
	exec   sqlite.Executor
	mapper *Mapper[entities.MedicalRecord, *entities.MedicalRecord]
}

// NewMedicalRecordAdapter creates a new medical record adapter
func NewMedicalRecordAdapter(exec sqlite.Executor) repositories.MedicalRecordRepository {
	return &MedicalRecordAdapter{
		exec:   exec,
		mapper: NewMapper[entities.MedicalRecord](exec),
	}
}

func (a *MedicalRecordAdapter) details() *goqu.SelectDataset {
	return a.exec.From(goqu.T("medical_records").As("r")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("r.patient_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("r.doctor_id")))).
		Select(
			goqu.I("r.id").As("id"),
			goqu.I("r.patient_id").As("patient_id"),
			goqu.I("r.doctor_id").As("doctor_id"),
			goqu.I("r.visit_date").As("visit_date"),
			goqu.I("r.diagnosis").As("diagnosis"),
			goqu.I("r.symptoms").As("symptoms"),
			goqu.I("r.treatment_plan").As("treatment_plan"),
			goqu.I("r.prescription").As("prescription"),
			goqu.I("r.conclusion").As("conclusion"),
			goqu.I("r.notes").As("notes"),
			goqu.I("r.created_at").As("created_at"),
			goqu.I("r.updated_at").As("updated_at"),
			goqu.L("p.first_name || ' ' || p.last_name").As("patient_name"),
			goqu.L("d.first_name || ' ' || d.last_name").As("doctor_name"),
			goqu.I("d.specialty").As("specialty"),
		).
		Order(goqu.I("r.visit_date").Desc(), goqu.I("r.id").Desc())
}

func (a *MedicalRecordAdapter) scanDetails(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.MedicalRecordDetail, error) {
	var rows []entities.MedicalRecordDetail
	if err := ds.ScanStructsContext(ctx, &rows); err != nil {
		return nil, apperrors.NewDataAccessError("failed to query medical records", err)
	}

	out := make([]*entities.MedicalRecordDetail, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (a *MedicalRecordAdapter) GetByID(ctx context.Context, id int64) (*entities.MedicalRecord, error) {
	return a.mapper.Find(ctx, id)
}

func (a *MedicalRecordAdapter) GetDetail(ctx context.Context, id int64) (*entities.MedicalRecordDetail, error) {
	rows, err := a.scanDetails(ctx, a.details().Where(goqu.I("r.id").Eq(id)))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (a *MedicalRecordAdapter) ListByPatient(ctx context.Context, patientID int64) ([]*entities.MedicalRecordDetail, error) {
	return a.scanDetails(ctx, a.details().Where(goqu.I("r.patient_id").Eq(patientID)))
}

func (a *MedicalRecordAdapter) ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.MedicalRecordDetail, error) {
	return a.scanDetails(ctx, a.details().Where(goqu.I("r.doctor_id").Eq(doctorID)))
}

func (a *MedicalRecordAdapter) Create(ctx context.Context, record *entities.MedicalRecord) error {
	return a.mapper.Save(ctx, record)
}

func (a *MedicalRecordAdapter) Update(ctx context.Context, record *entities.MedicalRecord) error {
	return a.mapper.Save(ctx, record)
}

func (a *MedicalRecordAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	return a.mapper.DeleteByKey(ctx, id)
}
