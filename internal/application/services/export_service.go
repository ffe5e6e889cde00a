package services

import (
	"context"
	"time"

	"github.com/CoderFake/healthcare-system/internal/adapters/export"
	"github.com/CoderFake/healthcare-system/internal/domain/repositories"
	apperrors "github.com/CoderFake/healthcare-system/pkg/errors"
)

// ExportService renders lists as spreadsheets
type ExportService struct {
	store repositories.Registry
	now   func() time.Time
}

// NewExportService creates a new export service
func NewExportService(store repositories.Registry) *ExportService {
	return &ExportService{store: store, now: time.Now}
}

// Patients returns every patient as an .xlsx workbook
func (s *ExportService) Patients(ctx context.Context) (_ []byte, err error) {
	ctx, done := track(ctx, "ExportService.Patients")
	defer done(&err)

	patients, err := s.store.Patients().List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := export.Write(export.PatientSheet(patients, s.now()))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render patients workbook", err)
	}
	return data, nil
}

// Appointments returns every appointment as an .xlsx workbook
func (s *ExportService) Appointments(ctx context.Context) (_ []byte, err error) {
	ctx, done := track(ctx, "ExportService.Appointments")
	defer done(&err)

	appointments, err := s.store.Appointments().ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	data, err := export.Write(export.AppointmentSheet(appointments))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render appointments workbook", err)
	}
	return data, nil
}
