package handlers

import (
	"context"
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// MedicalRecordService defines the interface for medical record operations
type MedicalRecordService interface {
	Get(ctx context.Context, id int64) (*entities.MedicalRecordDetail, error)
	Create(ctx context.Context, fields entities.Fields) (*entities.MedicalRecord, error)
	Update(ctx context.Context, id int64, fields entities.Fields) (*entities.MedicalRecord, error)
	Delete(ctx context.Context, id int64) error
}

// RecordHandler handles medical record HTTP requests
type RecordHandler struct {
	service MedicalRecordService
}

// NewRecordHandler creates a new medical record handler
func NewRecordHandler(service MedicalRecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// Get handles GET /api/records/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if record == nil {
		respondWithError(w, http.StatusNotFound, "medical record not found")
		return
	}
	respondWithData(w, http.StatusOK, "", record)
}

// Create handles POST /api/records
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.Create(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "medical record created", record)
}

// Update handles PUT /api/records/{id}
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	record, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "medical record updated", record)
}

// Delete handles DELETE /api/records/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "medical record deleted", nil)
}
