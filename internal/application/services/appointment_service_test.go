package services_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")
	other := env.doctor(t, "444555666", "Dermatology")

	first, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
	require.NoError(t, err)

	t.Run("defaults status to waiting", func(t *testing.T) {
		assert.NotZero(t, first.ID)
		assert.Equal(t, entities.AppointmentStatusWaiting, first.Status)
	})

	t.Run("rejects the same doctor, date and time", func(t *testing.T) {
		_, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, apperrors.FieldErrors(err), "time")
	})

	t.Run("availability reflects the booking", func(t *testing.T) {
		ok, err := svc.IsTimeAvailable(ctx, doctor.ID, "2024-06-01", "09:00", 0)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.IsTimeAvailable(ctx, doctor.ID, "2024-06-01", "09:00", first.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.IsTimeAvailable(ctx, doctor.ID, "2024-06-01", "09:30", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = svc.IsTimeAvailable(ctx, doctor.ID, "01/06/2024", "9am", 0)
		assert.True(t, apperrors.IsValidation(err))
		assert.Len(t, apperrors.FieldErrors(err), 2)
	})

	t.Run("another doctor may take the same time", func(t *testing.T) {
		_, err := svc.Create(ctx, booking(patient.ID, other.ID, "2024-06-01", "09:00"))
		assert.NoError(t, err)
	})

	t.Run("cancelled appointments still hold their slot", func(t *testing.T) {
		require.NoError(t, svc.UpdateStatus(ctx, first.ID, "cancelled"))
		_, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("rejects invalid input before storage", func(t *testing.T) {
		_, err := svc.Create(ctx, entities.Fields{"patient_id": "1", "date": "2024-13-45"})
		require.Error(t, err)
		fields := apperrors.FieldErrors(err)
		assert.Equal(t, "is required", fields["doctor_id"])
		assert.Equal(t, "is required", fields["time"])
		assert.Contains(t, fields, "date")
	})

	t.Run("rejects unknown patient or doctor", func(t *testing.T) {
		_, err := svc.Create(ctx, booking(999, 998, "2024-06-02", "08:00"))
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, map[string]string{"patient_id": "no such patient", "doctor_id": "no such doctor"}, apperrors.FieldErrors(err))
	})
}

func TestAppointmentService_Capacity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")

	_, err := services.NewSettingService(env.store.Settings()).Set(ctx, services.SettingMaxAppointmentsPerDoctor, 1, services.SetOptions{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "10:00"))
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, apperrors.FieldErrors(err), "date")

	moved, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-02", "10:00"))
	require.NoError(t, err)

	t.Run("moving onto a full day conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, moved.ID, entities.Fields{"date": "2024-06-01"})
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, apperrors.FieldErrors(err), "date")
	})

	t.Run("a new time on the same day is not counted twice", func(t *testing.T) {
		updated, err := svc.Update(ctx, moved.ID, entities.Fields{"time": "11:00"})
		require.NoError(t, err)
		assert.Equal(t, "11:00", updated.Time)
	})

	t.Run("changing doctor within a full clinic day excludes itself", func(t *testing.T) {
		settings := services.NewSettingService(env.store.Settings())
		_, err := settings.Set(ctx, services.SettingMaxAppointmentsPerDoctor, 0, services.SetOptions{})
		require.NoError(t, err)
		_, err = settings.Set(ctx, services.SettingMaxAppointmentsPerDay, 1, services.SetOptions{})
		require.NoError(t, err)
		other := env.doctor(t, "444555666", "Dermatology")

		updated, err := svc.Update(ctx, moved.ID, entities.Fields{"doctor_id": strconv.FormatInt(other.ID, 10)})
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.DoctorID)

		_, err = svc.Update(ctx, moved.ID, entities.Fields{"date": "2024-06-01"})
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestAppointmentService_TimesAreCanonical(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")

	_, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "9:00"))
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, apperrors.FieldErrors(err), "time")

	_, err = svc.IsTimeAvailable(ctx, doctor.ID, "2024-06-01", "9:00", 0)
	assert.True(t, apperrors.IsValidation(err))

	appointments, err := svc.ListByDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)

	slots, err := svc.AvailableSlots(ctx, doctor.ID, "2024-06-01")
	require.NoError(t, err)
	assert.NotContains(t, slots, "09:00")
}

func TestAppointmentService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")

	first, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "10:00"))
	require.NoError(t, err)

	t.Run("keeping the slot does not conflict with itself", func(t *testing.T) {
		updated, err := svc.Update(ctx, first.ID, entities.Fields{"reason": "follow-up"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "follow-up", *updated.Reason)
		assert.Equal(t, "09:00", updated.Time)
	})

	t.Run("moving onto a held slot conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, second.ID, entities.Fields{"time": "09:00"})
		assert.True(t, apperrors.IsConflict(err))

		stored, err := svc.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "10:00", stored.Time)
	})

	t.Run("moving onto a free slot succeeds", func(t *testing.T) {
		updated, err := svc.Update(ctx, second.ID, entities.Fields{"time": "11:30"})
		require.NoError(t, err)
		assert.Equal(t, "11:30", updated.Time)
	})

	t.Run("an id in the fields cannot retarget the update", func(t *testing.T) {
		updated, err := svc.Update(ctx, second.ID, entities.Fields{"id": "1", "reason": "x"})
		require.NoError(t, err)
		assert.Equal(t, second.ID, updated.ID)
	})

	t.Run("absent appointment", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, entities.Fields{"reason": "x"})
		assert.True(t, apperrors.IsNotFound(err))

		assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, 999)))
		assert.True(t, apperrors.IsNotFound(svc.UpdateStatus(ctx, 999, "completed")))
	})

	t.Run("unknown status", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, first.ID, "done")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAppointmentService_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")

	_, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
	require.NoError(t, err)

	slots, err := svc.AvailableSlots(ctx, doctor.ID, "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, slots, 19)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "09:00")

	slots, err = svc.AvailableSlots(ctx, doctor.ID, "2024-06-02")
	require.NoError(t, err)
	assert.Len(t, slots, 20)
}

func TestAppointmentService_CreateMedicalRecordFromAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("links the record and completes the appointment", func(t *testing.T) {
		env := newTestEnv(t)
		svc := env.appointments()
		patient := env.patient(t, "123456789")
		doctor := env.doctor(t, "111222333", "Cardiology")
		appt, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
		require.NoError(t, err)

		record, err := svc.CreateMedicalRecordFromAppointment(ctx, appt.ID, "flu")
		require.NoError(t, err)
		assert.NotZero(t, record.ID)
		assert.Equal(t, patient.ID, record.PatientID)
		assert.Equal(t, doctor.ID, record.DoctorID)
		assert.Equal(t, "2024-06-01", record.VisitDate)
		assert.Equal(t, "flu", record.Diagnosis)
		require.NotNil(t, record.Notes)
		assert.Contains(t, *record.Notes, "Created from appointment #")

		stored, err := svc.Get(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusCompleted, stored.Status)
	})

	t.Run("absent appointment writes nothing", func(t *testing.T) {
		env := newTestEnv(t)
		patient := env.patient(t, "123456789")

		_, err := env.appointments().CreateMedicalRecordFromAppointment(ctx, 42, "flu")
		assert.True(t, apperrors.IsNotFound(err))

		records, err := services.NewPatientService(env.store).MedicalRecords(ctx, patient.ID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("a failed status update rolls the record back", func(t *testing.T) {
		env := newTestEnv(t)
		svc := env.appointments()
		patient := env.patient(t, "123456789")
		doctor := env.doctor(t, "111222333", "Cardiology")
		appt, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", "09:00"))
		require.NoError(t, err)

		_, err = env.client.Execute(ctx, `CREATE TRIGGER lock_status BEFORE UPDATE OF status ON appointments
			WHEN NEW.status = 'completed' BEGIN SELECT RAISE(ABORT, 'status is locked'); END`)
		require.NoError(t, err)

		_, err = svc.CreateMedicalRecordFromAppointment(ctx, appt.ID, "flu")
		require.Error(t, err)
		assert.True(t, apperrors.IsDataAccess(err))

		records, err := services.NewPatientService(env.store).MedicalRecords(ctx, patient.ID)
		require.NoError(t, err)
		assert.Empty(t, records)

		stored, err := svc.Get(ctx, appt.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusWaiting, stored.Status)
	})

	t.Run("diagnosis is required", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.appointments().CreateMedicalRecordFromAppointment(ctx, 1, "  ")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAppointmentService_Lists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := env.appointments()
	patient := env.patient(t, "123456789")
	doctor := env.doctor(t, "111222333", "Cardiology")

	for _, at := range []string{"10:00", "08:30"} {
		_, err := svc.Create(ctx, booking(patient.ID, doctor.ID, "2024-06-01", at))
		require.NoError(t, err)
	}

	byDate, err := svc.ListByDate(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "08:30", byDate[0].Time)
	assert.Equal(t, "Nguyen An", byDate[0].PatientName)

	_, err = svc.ListByDate(ctx, "June 1st")
	assert.True(t, apperrors.IsValidation(err))

	byDoctor, err := svc.ListByDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
