package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/clients/sqlite"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	exec   sqlite.Executor
	mapper *Mapper[entities.Appointment, *entities.Appointment]
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(exec sqlite.Executor) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		exec:   exec,
		mapper: NewMapper[entities.Appointment](exec),
	}
}

// details selects appointments joined with patient and doctor display names
func (a *AppointmentAdapter) details() *goqu.SelectDataset {
	return a.exec.From(goqu.T("appointments").As("a")).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.patient_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.patient_id").As("patient_id"),
			goqu.I("a.doctor_id").As("doctor_id"),
			goqu.I("a.date").As("date"),
			goqu.I("a.time").As("time"),
			goqu.I("a.reason").As("reason"),
			goqu.I("a.status").As("status"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("a.updated_at").As("updated_at"),
			goqu.L("p.first_name || ' ' || p.last_name").As("patient_name"),
			goqu.L("d.first_name || ' ' || d.last_name").As("doctor_name"),
			goqu.I("d.specialty").As("specialty"),
		)
}

func (a *AppointmentAdapter) scanDetails(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.AppointmentDetail, error) {
	var rows []entities.AppointmentDetail
	if err := ds.ScanStructsContext(ctx, &rows); err != nil {
		return nil, apperrors.NewDataAccessError("failed to query appointments", err)
	}

	out := make([]*entities.AppointmentDetail, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

var newestFirst = []exp.OrderedExpression{goqu.I("a.date").Desc(), goqu.I("a.time").Desc()}

func (a *AppointmentAdapter) GetByID(ctx context.Context, id int64) (*entities.Appointment, error) {
	return a.mapper.Find(ctx, id)
}

func (a *AppointmentAdapter) GetDetail(ctx context.Context, id int64) (*entities.AppointmentDetail, error) {
	rows, err := a.scanDetails(ctx, a.details().Where(goqu.I("a.id").Eq(id)))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (a *AppointmentAdapter) ListDetails(ctx context.Context) ([]*entities.AppointmentDetail, error) {
	return a.scanDetails(ctx, a.details().Order(newestFirst...))
}

// ListByDate retrieves the appointments of one day ordered by time
func (a *AppointmentAdapter) ListByDate(ctx context.Context, date string) ([]*entities.AppointmentDetail, error) {
	return a.scanDetails(ctx, a.details().
		Where(goqu.I("a.date").Eq(date)).
		Order(goqu.I("a.time").Asc(), goqu.I("a.id").Asc()))
}

func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.AppointmentDetail, error) {
	return a.scanDetails(ctx, a.details().
		Where(goqu.I("a.doctor_id").Eq(doctorID)).
		Order(newestFirst...))
}

func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID int64) ([]*entities.AppointmentDetail, error) {
	return a.scanDetails(ctx, a.details().
		Where(goqu.I("a.patient_id").Eq(patientID)).
		Order(newestFirst...))
}

// ListUpcomingByDoctor retrieves appointments on or after fromDate, soonest first
func (a *AppointmentAdapter) ListUpcomingByDoctor(ctx context.Context, doctorID int64, fromDate string, limit uint) ([]*entities.AppointmentDetail, error) {
	return a.scanDetails(ctx, a.details().
		Where(goqu.I("a.doctor_id").Eq(doctorID), goqu.I("a.date").Gte(fromDate)).
		Order(goqu.I("a.date").Asc(), goqu.I("a.time").Asc()).
		Limit(limit))
}

// CountBetween counts appointments dated from..to inclusive
func (a *AppointmentAdapter) CountBetween(ctx context.Context, from, to string) (int64, error) {
	return a.mapper.Count(ctx,
		Condition{Field: "date", Op: OpGte, Value: from},
		Condition{Field: "date", Op: OpLte, Value: to})
}

// IsSlotTaken reports whether another appointment holds the exact doctor/date/time
func (a *AppointmentAdapter) IsSlotTaken(ctx context.Context, doctorID int64, date, time string, excludeID int64) (bool, error) {
	preds := []Predicate{Eq("doctor_id", doctorID), Eq("date", date), Eq("time", time)}
	if excludeID != 0 {
		preds = append(preds, Condition{Field: "id", Op: OpNe, Value: excludeID})
	}

	n, err := a.mapper.Count(ctx, preds...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BookedTimes lists the times already taken for a doctor on a date
func (a *AppointmentAdapter) BookedTimes(ctx context.Context, doctorID int64, date string) ([]string, error) {
	times := []string{}
	err := a.exec.From("appointments").
		Select("time").
		Where(goqu.C("doctor_id").Eq(doctorID), goqu.C("date").Eq(date)).
		Order(goqu.C("time").Asc()).
		ScanValsContext(ctx, &times)
	if err != nil {
		return nil, apperrors.NewDataAccessError("failed to read booked times", err)
	}
	return times, nil
}

func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = entities.AppointmentStatusWaiting
	}
	return a.mapper.Save(ctx, appointment)
}

func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	return a.mapper.Save(ctx, appointment)
}

// UpdateStatus changes only the status and reports whether the row existed
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id int64, status entities.AppointmentStatus) (bool, error) {
	n, err := a.exec.Update(ctx, "appointments", goqu.Record{"status": string(status)}, goqu.C("id").Eq(id))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a *AppointmentAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	return a.mapper.DeleteByKey(ctx, id)
}
