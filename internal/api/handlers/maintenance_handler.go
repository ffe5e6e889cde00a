package handlers

import (
	"context"
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/application/services"
)

// MaintenanceService defines the database file operations
type MaintenanceService interface {
	Backup(ctx context.Context, path string) (string, error)
	Restore(ctx context.Context, path string) error
}

// DashboardService defines the summary statistics source
type DashboardService interface {
	Stats(ctx context.Context) (*services.DashboardStats, error)
}

// ExportService defines the spreadsheet exports
type ExportService interface {
	Patients(ctx context.Context) ([]byte, error)
	Appointments(ctx context.Context) ([]byte, error)
}

// MaintenanceHandler handles backup, restore, dashboard and export requests
type MaintenanceHandler struct {
	maintenance MaintenanceService
	dashboard   DashboardService
	export      ExportService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenance MaintenanceService, dashboard DashboardService, export ExportService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenance: maintenance,
		dashboard:   dashboard,
		export:      export,
	}
}

type backupRequest struct {
	Path    string `json:"path"`
	Confirm bool   `json:"confirm"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Backup handles POST /api/maintenance/backup
func (h *MaintenanceHandler) Backup(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	path, err := h.maintenance.Backup(r.Context(), req.Path)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "backup written", map[string]string{"path": path})
}

// Restore handles POST /api/maintenance/restore. The body must carry
// "confirm": true since the live database is replaced.
func (h *MaintenanceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Confirm {
		respondWithJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "invalid input",
			Errors:  map[string]string{"confirm": "must be true to replace the database"},
		})
		return
	}

	if err := h.maintenance.Restore(r.Context(), req.Path); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "database restored", map[string]string{"path": req.Path})
}

// Dashboard handles GET /api/dashboard
func (h *MaintenanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", stats)
}

// ExportPatients handles GET /api/export/patients.xlsx
func (h *MaintenanceHandler) ExportPatients(w http.ResponseWriter, r *http.Request) {
	h.writeWorkbook(w, r, "patients.xlsx", h.export.Patients)
}

// ExportAppointments handles GET /api/export/appointments.xlsx
func (h *MaintenanceHandler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	h.writeWorkbook(w, r, "appointments.xlsx", h.export.Appointments)
}

func (h *MaintenanceHandler) writeWorkbook(w http.ResponseWriter, r *http.Request, name string, build func(context.Context) ([]byte, error)) {
	data, err := build(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
