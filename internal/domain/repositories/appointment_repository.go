package repositories

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id int64) (*entities.Appointment, error)

	// GetDetail retrieves an appointment with patient and doctor names
	GetDetail(ctx context.Context, id int64) (*entities.AppointmentDetail, error)

	// ListDetails retrieves every appointment, newest date first
	ListDetails(ctx context.Context) ([]*entities.AppointmentDetail, error)

	// ListByDate retrieves the appointments of one day ordered by time
	ListByDate(ctx context.Context, date string) ([]*entities.AppointmentDetail, error)

	// ListByDoctor retrieves a doctor's appointments, newest first
	ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.AppointmentDetail, error)

	// ListByPatient retrieves a patient's appointments, newest first
	ListByPatient(ctx context.Context, patientID int64) ([]*entities.AppointmentDetail, error)

	// ListUpcomingByDoctor retrieves appointments on or after fromDate, soonest first
	ListUpcomingByDoctor(ctx context.Context, doctorID int64, fromDate string, limit uint) ([]*entities.AppointmentDetail, error)

	// CountBetween counts appointments dated from..to inclusive
	CountBetween(ctx context.Context, from, to string) (int64, error)

	// IsSlotTaken reports whether another appointment holds doctor/date/time.
	// excludeID (when non-zero) is ignored so an appointment never conflicts with itself.
	IsSlotTaken(ctx context.Context, doctorID int64, date, time string, excludeID int64) (bool, error)

	// BookedTimes lists the times already taken for a doctor on a date
	BookedTimes(ctx context.Context, doctorID int64, date string) ([]string, error)

	// Create inserts an appointment and assigns its ID
	Create(ctx context.Context, appointment *entities.Appointment) error

	// Update writes every field of an existing appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// UpdateStatus changes only the status and reports whether the row existed
	UpdateStatus(ctx context.Context, id int64, status entities.AppointmentStatus) (bool, error)

	// Delete removes an appointment and reports whether it existed
	Delete(ctx context.Context, id int64) (bool, error)
}
