package services

import (
	"context"
	"strings"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

// PatientService handles business logic for patients
type PatientService struct {
	store repositories.Registry
}

// NewPatientService creates a new patient service
func NewPatientService(store repositories.Registry) *PatientService {
	return &PatientService{store: store}
}

// List retrieves all patients
func (s *PatientService) List(ctx context.Context) ([]*entities.Patient, error) {
	return s.store.Patients().List(ctx)
}

// Get retrieves a patient by ID; nil when absent
func (s *PatientService) Get(ctx context.Context, id int64) (*entities.Patient, error) {
	return s.store.Patients().GetByID(ctx, id)
}

// GetByNationalID retrieves a patient by national ID; nil when absent
func (s *PatientService) GetByNationalID(ctx context.Context, nationalID string) (*entities.Patient, error) {
	return s.store.Patients().GetByNationalID(ctx, strings.TrimSpace(nationalID))
}

// Search matches term against names, national ID and hometown. A blank
// term lists everyone.
func (s *PatientService) Search(ctx context.Context, term string) ([]*entities.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.store.Patients().Search(ctx, term)
}

// Create validates and registers a new patient
func (s *PatientService) Create(ctx context.Context, fields entities.Fields) (_ *entities.Patient, err error) {
	ctx, done := track(ctx, "PatientService.Create")
	defer done(&err)

	fields = updateFields(fields)
	if err := invalid(validation.Patient(fields)); err != nil {
		return nil, err
	}
	patient, err := entities.NewPatientFromFields(fields)
	if err != nil {
		return nil, err
	}
	if err := s.checkNationalID(ctx, patient.NationalID, 0); err != nil {
		return nil, err
	}

	if err := s.store.Patients().Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Update applies a partial update, validated against the merged record
func (s *PatientService) Update(ctx context.Context, id int64, fields entities.Fields) (_ *entities.Patient, err error) {
	ctx, done := track(ctx, "PatientService.Update")
	defer done(&err)

	patient, err := s.store.Patients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperrors.NewNotFoundError("patient not found")
	}

	fields = updateFields(fields)
	if err := invalid(validation.Patient(validation.ForUpdate(patient.ToFields(), fields))); err != nil {
		return nil, err
	}
	if err := patient.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.checkNationalID(ctx, patient.NationalID, patient.ID); err != nil {
		return nil, err
	}

	if err := s.store.Patients().Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete removes a patient. Patients with appointments or records are kept
// by the database and the refusal surfaces as a data access error.
func (s *PatientService) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := track(ctx, "PatientService.Delete")
	defer done(&err)

	removed, err := s.store.Patients().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("patient not found")
	}
	return nil
}

// Appointments lists a patient's appointment history, newest first
func (s *PatientService) Appointments(ctx context.Context, id int64) ([]*entities.AppointmentDetail, error) {
	return s.store.Appointments().ListByPatient(ctx, id)
}

// MedicalRecords lists a patient's medical records, newest first
func (s *PatientService) MedicalRecords(ctx context.Context, id int64) ([]*entities.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().ListByPatient(ctx, id)
}

func (s *PatientService) checkNationalID(ctx context.Context, nationalID string, selfID int64) error {
	existing, err := s.store.Patients().GetByNationalID(ctx, nationalID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperrors.NewFieldConflictError("national_id", "is already registered")
	}
	return nil
}
