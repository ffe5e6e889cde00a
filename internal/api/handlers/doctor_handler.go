package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// DoctorService defines the interface for doctor operations
type DoctorService interface {
	List(ctx context.Context) ([]*entities.Doctor, error)
	Get(ctx context.Context, id int64) (*entities.Doctor, error)
	GetByNationalID(ctx context.Context, nationalID string) (*entities.Doctor, error)
	Search(ctx context.Context, term string) ([]*entities.Doctor, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*entities.Doctor, error)
	Upcoming(ctx context.Context, id int64, limit uint) ([]*entities.AppointmentDetail, error)
	Create(ctx context.Context, fields entities.Fields) (*entities.Doctor, error)
	Update(ctx context.Context, id int64, fields entities.Fields) (*entities.Doctor, error)
	Delete(ctx context.Context, id int64) error
	Appointments(ctx context.Context, id int64) ([]*entities.AppointmentDetail, error)
	MedicalRecords(ctx context.Context, id int64) ([]*entities.MedicalRecordDetail, error)
}

// DoctorHandler handles doctor-related HTTP requests
type DoctorHandler struct {
	service DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// List handles GET /api/doctors
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", doctors)
}

// Search handles GET /api/doctors/search?q=
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", doctors)
}

// ListBySpecialty handles GET /api/specialties/{specialty}/doctors
func (h *DoctorHandler) ListBySpecialty(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListBySpecialty(r.Context(), r.PathValue("specialty"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", doctors)
}

// GetByNationalID handles GET /api/doctors/lookup?national_id=
func (h *DoctorHandler) GetByNationalID(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.service.GetByNationalID(r.Context(), r.URL.Query().Get("national_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if doctor == nil {
		respondWithError(w, http.StatusNotFound, "doctor not found")
		return
	}
	respondWithData(w, http.StatusOK, "", doctor)
}

// Get handles GET /api/doctors/{id}
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	doctor, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if doctor == nil {
		respondWithError(w, http.StatusNotFound, "doctor not found")
		return
	}
	respondWithData(w, http.StatusOK, "", doctor)
}

// Upcoming handles GET /api/doctors/{id}/upcoming?limit=
func (h *DoctorHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	var limit uint
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			invalidID(w, "limit")
			return
		}
		limit = uint(n)
	}

	appointments, err := h.service.Upcoming(r.Context(), id, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// Create handles POST /api/doctors
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	doctor, err := h.service.Create(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "doctor created", doctor)
}

// Update handles PUT /api/doctors/{id}
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	doctor, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "doctor updated", doctor)
}

// Delete handles DELETE /api/doctors/{id}
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "doctor deleted", nil)
}

// Appointments handles GET /api/doctors/{id}/appointments
func (h *DoctorHandler) Appointments(w http.ResponseWriter, r *http.Request) {
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

// MedicalRecords handles GET /api/doctors/{id}/records
func (h *DoctorHandler) MedicalRecords(w http.ResponseWriter, r *http.Request) {
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
