package services

import (
	"context"
	"strings"
	"time"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/utils"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

const defaultUpcomingLimit = 10

// DoctorService handles business logic for doctors
type DoctorService struct {
	store repositories.Registry
	now   func() time.Time
}

// NewDoctorService creates a new doctor service
func NewDoctorService(store repositories.Registry) *DoctorService {
	return &DoctorService{store: store, now: time.Now}
}

func (s *DoctorService) List(ctx context.Context) ([]*entities.Doctor, error) {
	return s.store.Doctors().List(ctx)
}

// Get retrieves a doctor by ID; nil when absent
func (s *DoctorService) Get(ctx context.Context, id int64) (*entities.Doctor, error) {
	return s.store.Doctors().GetByID(ctx, id)
}

func (s *DoctorService) GetByNationalID(ctx context.Context, nationalID string) (*entities.Doctor, error) {
	return s.store.Doctors().GetByNationalID(ctx, strings.TrimSpace(nationalID))
}

// Search matches term against names, national ID and specialty
func (s *DoctorService) Search(ctx context.Context, term string) ([]*entities.Doctor, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.store.Doctors().Search(ctx, term)
}

func (s *DoctorService) ListBySpecialty(ctx context.Context, specialty string) ([]*entities.Doctor, error) {
	return s.store.Doctors().ListBySpecialty(ctx, strings.TrimSpace(specialty))
}

// Upcoming lists the doctor's appointments from today on, soonest first
func (s *DoctorService) Upcoming(ctx context.Context, id int64, limit uint) ([]*entities.AppointmentDetail, error) {
	if limit == 0 {
		limit = defaultUpcomingLimit
	}
	return s.store.Appointments().ListUpcomingByDoctor(ctx, id, s.now().Format(utils.DateLayout), limit)
}

// Appointments lists every appointment of the doctor, newest first
func (s *DoctorService) Appointments(ctx context.Context, id int64) ([]*entities.AppointmentDetail, error) {
	return s.store.Appointments().ListByDoctor(ctx, id)
}

func (s *DoctorService) MedicalRecords(ctx context.Context, id int64) ([]*entities.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().ListByDoctor(ctx, id)
}

// Create validates and registers a new doctor
func (s *DoctorService) Create(ctx context.Context, fields entities.Fields) (_ *entities.Doctor, err error) {
	ctx, done := track(ctx, "DoctorService.Create")
	defer done(&err)

	fields = updateFields(fields)
	if err := invalid(validation.Doctor(fields)); err != nil {
		return nil, err
	}
	doctor, err := entities.NewDoctorFromFields(fields)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, doctor); err != nil {
		return nil, err
	}

	if err := s.store.Doctors().Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Update applies a partial update, validated against the merged record
func (s *DoctorService) Update(ctx context.Context, id int64, fields entities.Fields) (_ *entities.Doctor, err error) {
	ctx, done := track(ctx, "DoctorService.Update")
	defer done(&err)

	doctor, err := s.store.Doctors().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}

	fields = updateFields(fields)
	if err := invalid(validation.Doctor(validation.ForUpdate(doctor.ToFields(), fields))); err != nil {
		return nil, err
	}
	if err := doctor.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, doctor); err != nil {
		return nil, err
	}

	if err := s.store.Doctors().Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := track(ctx, "DoctorService.Delete")
	defer done(&err)

	removed, err := s.store.Doctors().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("doctor not found")
	}
	return nil
}

// checkReferences enforces a unique national ID and an existing linked login
func (s *DoctorService) checkReferences(ctx context.Context, doctor *entities.Doctor) error {
	existing, err := s.store.Doctors().GetByNationalID(ctx, doctor.NationalID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != doctor.ID {
		return apperrors.NewFieldConflictError("national_id", "is already registered")
	}

	if doctor.Username == nil {
		return nil
	}
	account, err := s.store.Accounts().GetByUsername(ctx, *doctor.Username)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.NewFieldValidationError(map[string]string{"username": "no such account"})
	}
	return nil
}
