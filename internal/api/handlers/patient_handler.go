package handlers

import (
	"context"
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// PatientService defines the interface for patient operations
type PatientService interface {
	List(ctx context.Context) ([]*entities.Patient, error)
	Get(ctx context.Context, id int64) (*entities.Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*entities.Patient, error)
	Search(ctx context.Context, term string) ([]*entities.Patient, error)
	Create(ctx context.Context, fields entities.Fields) (*entities.Patient, error)
	Update(ctx context.Context, id int64, fields entities.Fields) (*entities.Patient, error)
	Delete(ctx context.Context, id int64) error
	Appointments(ctx context.Context, id int64) ([]*entities.AppointmentDetail, error)
	MedicalRecords(ctx context.Context, id int64) ([]*entities.MedicalRecordDetail, error)
}

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	service PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(service PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List handles GET /api/patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", patients)
}

// Search handles GET /api/patients/search?q=
func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", patients)
}

// GetByNationalID handles GET /api/patients/lookup?national_id=
func (h *PatientHandler) GetByNationalID(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.GetByNationalID(r.Context(), r.URL.Query().Get("national_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if patient == nil {
		respondWithError(w, http.StatusNotFound, "patient not found")
		return
	}
	respondWithData(w, http.StatusOK, "", patient)
}

// Get handles GET /api/patients/{id}
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	patient, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if patient == nil {
		respondWithError(w, http.StatusNotFound, "patient not found")
		return
	}
	respondWithData(w, http.StatusOK, "", patient)
}

// Create handles POST /api/patients
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	patient, err := h.service.Create(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "patient created", patient)
}

// Update handles PUT /api/patients/{id}
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	patient, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "patient updated", patient)
}

// Delete handles DELETE /api/patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "patient deleted", nil)
}

// Appointments handles GET /api/patients/{id}/appointments
func (h *PatientHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	appointments, err := h.service.Appointments(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// MedicalRecords handles GET /api/patients/{id}/records
func (h *PatientHandler) MedicalRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	records, err := h.service.MedicalRecords(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", records)
}
