package services

import (
	"context"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
	"github.com/CoderFake/healthcare-system/pkg/validation"
)

// MedicalRecordService handles visit outcomes written outside of an appointment
type MedicalRecordService struct {
	store repositories.Registry
}

// NewMedicalRecordService creates a new medical record service
func NewMedicalRecordService(store repositories.Registry) *MedicalRecordService {
	return &MedicalRecordService{store: store}
}

// Get retrieves a record with display names; nil when absent
func (s *MedicalRecordService) Get(ctx context.Context, id int64) (*entities.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().GetDetail(ctx, id)
}

func (s *MedicalRecordService) ListByPatient(ctx context.Context, patientID int64) ([]*entities.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().ListByPatient(ctx, patientID)
}

func (s *MedicalRecordService) ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.MedicalRecordDetail, error) {
	return s.store.MedicalRecords().ListByDoctor(ctx, doctorID)
}

// Create validates and stores a record
func (s *MedicalRecordService) Create(ctx context.Context, fields entities.Fields) (_ *entities.MedicalRecord, err error) {
	ctx, done := track(ctx, "MedicalRecordService.Create")
	defer done(&err)

	fields = updateFields(fields)
	if err := invalid(validation.MedicalRecord(fields)); err != nil {
		return nil, err
	}
	record, err := entities.NewMedicalRecordFromFields(fields)
	if err != nil {
		return nil, err
	}
	if err := checkParties(ctx, s.store, record.PatientID, record.DoctorID); err != nil {
		return nil, err
	}

	if err := s.store.MedicalRecords().Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update applies a partial update, validated against the merged record
func (s *MedicalRecordService) Update(ctx context.Context, id int64, fields entities.Fields) (_ *entities.MedicalRecord, err error) {
	ctx, done := track(ctx, "MedicalRecordService.Update")
	defer done(&err)

	record, err := s.store.MedicalRecords().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("medical record not found")
	}

	fields = updateFields(fields)
	if err := invalid(validation.MedicalRecord(validation.ForUpdate(record.ToFields(), fields))); err != nil {
		return nil, err
	}
	patientID, doctorID := record.PatientID, record.DoctorID
	if err := record.Apply(fields); err != nil {
		return nil, err
	}
	if record.PatientID != patientID || record.DoctorID != doctorID {
		if err := checkParties(ctx, s.store, record.PatientID, record.DoctorID); err != nil {
			return nil, err
		}
	}

	if err := s.store.MedicalRecords().Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MedicalRecordService) Delete(ctx context.Context, id int64) (err error) {
	ctx, done := track(ctx, "MedicalRecordService.Delete")
	defer done(&err)

	removed, err := s.store.MedicalRecords().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFoundError("medical record not found")
	}
	return nil
}
