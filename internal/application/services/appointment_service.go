package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	"github.com/CoderFake/healthcare-system/internal/infrastructure/observability"
	"github.com/CoderFake/healthcare-system/pkg/config"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

const errSlotTaken = "doctor already has an appointment at this time"

// AppointmentService handles appointment booking logic
type AppointmentService struct {
	store    repositories.Store
	schedule config.ScheduleConfig
	metrics  *observability.Metrics
}

// NewAppointmentService creates a new appointment service. metrics may be nil.
func NewAppointmentService(store repositories.Store, schedule config.ScheduleConfig, metrics *observability.Metrics) *AppointmentService {
	return &AppointmentService{
		store:    store,
		schedule: schedule,
		metrics:  metrics,
	}
}

// List retrieves all appointments with display names, newest first
func (s *AppointmentService) List(ctx context.Context) ([]*entities.AppointmentDetail, error) {
	return s.store.Appointments().ListDetails(ctx)
}

// Get retrieves one appointment with display names; nil when absent
func (s *AppointmentService) Get(ctx context.Context, id int64) (*entities.AppointmentDetail, error) {
	return s.store.Appointments().GetDetail(ctx, id)
}

// ListByDate retrieves the appointments of one day ordered by time
func (s *AppointmentService) ListByDate(ctx context.Context, date string) ([]*entities.AppointmentDetail, error) {
	if !validation.Date(date) {
		return nil, apperrors.NewFieldValidationError(map[string]string{"date": "must be a date in YYYY-MM-DD format"})
	}
	return s.store.Appointments().ListByDate(ctx, date)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.AppointmentDetail, error) {
	return s.store.Appointments().ListByDoctor(ctx, doctorID)
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID int64) ([]*entities.AppointmentDetail, error) {
	return s.store.Appointments().ListByPatient(ctx, patientID)
}

// Create validates and books an appointment. The availability check and the
// insert run in one transaction.
func (s *AppointmentService) Create(ctx context.Context, fields entities.Fields) (_ *entities.Appointment, err error) {
	ctx, done := track(ctx, "AppointmentService.Create")
	defer done(&err)

	fields = updateFields(fields)
	if err := invalid(validation.Appointment(fields)); err != nil {
		return nil, err
	}
	appointment, err := entities.NewAppointmentFromFields(fields)
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(tx repositories.Registry) error {
		if err := checkParties(ctx, tx, appointment.PatientID, appointment.DoctorID); err != nil {
			return err
		}
		if err := s.checkSlot(ctx, tx, appointment, 0); err != nil {
			return err
		}
		if err := s.checkCapacity(ctx, tx, appointment, nil); err != nil {
			return err
		}
		return tx.Appointments().Create(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// Update applies a partial update. Availability is re-checked only when the
// doctor, date or time changes, excluding the appointment itself.
func (s *AppointmentService) Update(ctx context.Context, id int64, fields entities.Fields) (_ *entities.Appointment, err error) {
	ctx, done := track(ctx, "AppointmentService.Update")
	defer done(&err)

	fields = updateFields(fields)
	var updated *entities.Appointment
	err = s.store.WithinTx(ctx, func(tx repositories.Registry) error {
		stored, err := tx.Appointments().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return apperrors.NewNotFoundError("appointment not found")
		}
		if err := invalid(validation.Appointment(validation.ForUpdate(stored.ToFields(), fields))); err != nil {
			return err
		}

		next := *stored
		if err := next.Apply(fields); err != nil {
			return err
		}
		if next.PatientID != stored.PatientID || next.DoctorID != stored.DoctorID {
			if err := checkParties(ctx, tx, next.PatientID, next.DoctorID); err != nil {
				return err
			}
		}
		if !next.SameSlot(stored) {
			if err := s.checkSlot(ctx, tx, &next, next.ID); err != nil {
				return err
			}
		}
		if next.DoctorID != stored.DoctorID || next.Date != stored.Date {
			if err := s.checkCapacity(ctx, tx, &next, stored); err != nil {
				return err
			}
		}

		if err := tx.Appointments().Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := track(ctx, "AppointmentService.Delete")
	defer done(&err)

	removed, err := s.store.Appointments().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("appointment not found")
	}
	return nil
}

// IsTimeAvailable reports whether the doctor is free on date at the given time.
// excludeID skips one appointment, for moving it; 0 excludes nothing.
func (s *AppointmentService) IsTimeAvailable(ctx context.Context, doctorID int64, date, at string, excludeID int64) (bool, error) {
	errs := map[string]string{}
	if !validation.Date(date) {
		errs["date"] = "must be a date in YYYY-MM-DD format"
	}
	if !validation.Time(at) {
		errs["time"] = "must be a time in HH:MM format"
	}
	if err := invalid(errs); err != nil {
		return false, err
	}

	taken, err := s.store.Appointments().IsSlotTaken(ctx, doctorID, date, at, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// AvailableSlots returns the slot grid of date minus the doctor's booked times
func (s *AppointmentService) AvailableSlots(ctx context.Context, doctorID int64, date string) ([]string, error) {
	if !validation.Date(date) {
		return nil, apperrors.NewFieldValidationError(map[string]string{"date": "must be a date in YYYY-MM-DD format"})
	}

	booked, err := s.store.Appointments().BookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	settings := s.store.Settings()
	grid := utils.GenerateTimeSlots(
		settingInt(ctx, settings, SettingWorkingHoursStart, s.schedule.SlotStartHour),
		settingInt(ctx, settings, SettingWorkingHoursEnd, s.schedule.SlotEndHour),
		settingInt(ctx, settings, SettingSlotIntervalMinutes, s.schedule.SlotIntervalMinutes),
	)

	free := make([]string, 0, len(grid))
	for _, slot := range grid {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// UpdateStatus moves an appointment to status
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status string) (err error) {
	ctx, done := track(ctx, "AppointmentService.UpdateStatus")
	defer done(&err)

	status = strings.TrimSpace(status)
	if !validation.AppointmentStatus(status) {
		return apperrors.NewFieldValidationError(map[string]string{
			"status": "must be one of " + strings.Join(validation.AppointmentStatuses, ", "),
		})
	}

	ok, err := s.store.Appointments().UpdateStatus(ctx, id, entities.AppointmentStatus(status))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("appointment not found")
	}
	return nil
}

// CreateMedicalRecordFromAppointment records the outcome of a visit and marks
// the appointment completed. Both writes commit together or not at all.
func (s *AppointmentService) CreateMedicalRecordFromAppointment(ctx context.Context, appointmentID int64, diagnosis string) (_ *entities.MedicalRecord, err error) {
	ctx, done := track(ctx, "AppointmentService.CreateMedicalRecordFromAppointment")
	defer done(&err)

	diagnosis = strings.TrimSpace(diagnosis)
	if !validation.Required(diagnosis) {
		return nil, apperrors.NewFieldValidationError(map[string]string{"diagnosis": "is required"})
	}

	var record *entities.MedicalRecord
	err = s.store.WithinTx(ctx, func(tx repositories.Registry) error {
		appointment, err := tx.Appointments().GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			return apperrors.NewNotFoundError("appointment not found")
		}

		record = entities.NewMedicalRecordFromAppointment(appointment, diagnosis)
		if err := tx.MedicalRecords().Create(ctx, record); err != nil {
			return err
		}

		ok, err := tx.Appointments().UpdateStatus(ctx, appointmentID, entities.AppointmentStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewNotFoundError("appointment not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// checkSlot rejects a booking whose exact doctor, date and time is held by
// another appointment of any status.
func (s *AppointmentService) checkSlot(ctx context.Context, tx repositories.Registry, a *entities.Appointment, excludeID int64) error {
	taken, err := tx.Appointments().IsSlotTaken(ctx, a.DoctorID, a.Date, a.Time, excludeID)
	if err != nil {
		return err
	}
	if taken {
		observability.RecordConflict(ctx, s.metrics, a.DoctorID)
		return apperrors.NewFieldConflictError("time", errSlotTaken)
	}
	return nil
}

// checkCapacity applies the per-day and per-doctor booking limits. A limit
// of zero or less disables it. moving is the stored row of an appointment
// being rescheduled; it is not counted against its own target day.
func (s *AppointmentService) checkCapacity(ctx context.Context, tx repositories.Registry, a, moving *entities.Appointment) error {
	settings := tx.Settings()

	if limit := settingInt(ctx, settings, SettingMaxAppointmentsPerDoctor, s.schedule.MaxAppointmentsPerDoctor); limit > 0 {
		booked, err := tx.Appointments().BookedTimes(ctx, a.DoctorID, a.Date)
		if err != nil {
			return err
		}
		n := len(booked)
		if moving != nil && moving.DoctorID == a.DoctorID && moving.Date == a.Date {
			n--
		}
		if n >= limit {
			observability.RecordConflict(ctx, s.metrics, a.DoctorID)
			return apperrors.NewFieldConflictError("date", fmt.Sprintf("doctor is fully booked on %s", a.Date))
		}
	}

	if limit := settingInt(ctx, settings, SettingMaxAppointmentsPerDay, s.schedule.MaxAppointmentsPerDay); limit > 0 {
		n, err := tx.Appointments().CountBetween(ctx, a.Date, a.Date)
		if err != nil {
			return err
		}
		if moving != nil && moving.Date == a.Date {
			n--
		}
		if n >= int64(limit) {
			return apperrors.NewFieldConflictError("date", fmt.Sprintf("clinic is fully booked on %s", a.Date))
		}
	}
	return nil
}

// checkParties rejects bookings for a patient or doctor that does not exist
func checkParties(ctx context.Context, tx repositories.Registry, patientID, doctorID int64) error {
	errs := map[string]string{}

	patient, err := tx.Patients().GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		errs["patient_id"] = "no such patient"
	}

	doctor, err := tx.Doctors().GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		errs["doctor_id"] = "no such doctor"
	}
	return invalid(errs)
}
