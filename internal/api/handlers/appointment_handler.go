package handlers

import (
	"context"
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	List(ctx context.Context) ([]*entities.AppointmentDetail, error)
	Get(ctx context.Context, id int64) (*entities.AppointmentDetail, error)
	ListByDate(ctx context.Context, date string) ([]*entities.AppointmentDetail, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*entities.AppointmentDetail, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*entities.AppointmentDetail, error)
	Create(ctx context.Context, fields entities.Fields) (*entities.Appointment, error)
	Update(ctx context.Context, id int64, fields entities.Fields) (*entities.Appointment, error)
	Delete(ctx context.Context, id int64) error
	IsTimeAvailable(ctx context.Context, doctorID int64, date, at string, excludeID int64) (bool, error)
	AvailableSlots(ctx context.Context, doctorID int64, date string) ([]string, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CreateMedicalRecordFromAppointment(ctx context.Context, appointmentID int64, diagnosis string) (*entities.MedicalRecord, error)
}

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type statusRequest struct {
	Status string `json:"status"`
}

type diagnosisRequest struct {
	Diagnosis string `json:"diagnosis"`
}

// List handles GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// ListByDate handles GET /api/appointments/date/{date}
func (h *AppointmentHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListByDate(r.Context(), r.PathValue("date"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// ListByDoctor handles GET /api/appointments/doctor/{id}
func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	appointments, err := h.service.ListByDoctor(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// ListByPatient handles GET /api/appointments/patient/{id}
func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	appointments, err := h.service.ListByPatient(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", appointments)
}

// GetAvailability handles GET /api/appointments/availability?doctor_id&date&time&exclude_id
func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := queryID(r, "doctor_id")
	if !ok || doctorID == 0 {
		invalidID(w, "doctor_id")
		return
	}
	excludeID, ok := queryID(r, "exclude_id")
	if !ok {
		invalidID(w, "exclude_id")
		return
	}

	q := r.URL.Query()
	available, err := h.service.IsTimeAvailable(r.Context(), doctorID, q.Get("date"), q.Get("time"), excludeID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", map[string]interface{}{
		"doctor_id": doctorID,
		"date":      q.Get("date"),
		"time":      q.Get("time"),
		"available": available,
	})
}

// GetSlots handles GET /api/appointments/slots?doctor_id&date
func (h *AppointmentHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := queryID(r, "doctor_id")
	if !ok || doctorID == 0 {
		invalidID(w, "doctor_id")
		return
	}

	date := r.URL.Query().Get("date")
	slots, err := h.service.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", map[string]interface{}{
		"doctor_id": doctorID,
		"date":      date,
		"slots":     slots,
		"count":     len(slots),
	})
}

// Get handles GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	appointment, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if appointment == nil {
		respondWithError(w, http.StatusNotFound, "appointment not found")
		return
	}
	respondWithData(w, http.StatusOK, "", appointment)
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := h.service.Create(r.Context(), fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "appointment booked", appointment)
}

// Update handles PUT /api/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	appointment, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "appointment updated", appointment)
}

// Delete handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "appointment deleted", nil)
}

// UpdateStatus handles PATCH /api/appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "status updated", map[string]interface{}{"id": id, "status": req.Status})
}

// CreateMedicalRecord handles POST /api/appointments/{id}/records
func (h *AppointmentHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		invalidID(w, "id")
		return
	}
	var req diagnosisRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.CreateMedicalRecordFromAppointment(r.Context(), id, req.Diagnosis)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, "medical record created", record)
}
