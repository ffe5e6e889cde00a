package handlers

import (
	"context"
	"net/http"

	"github.com/CoderFake/healthcare-system/internal/application/services"
	"github.com/CoderFake/healthcare-system/internal/domain/entities"
)

// SettingService defines the interface for application settings
type SettingService interface {
	List(ctx context.Context) ([]*entities.AppSetting, error)
	Get(ctx context.Context, key string) (interface{}, bool, error)
	Set(ctx context.Context, key string, value interface{}, opts services.SetOptions) (*entities.AppSetting, error)
}

// SettingHandler handles application setting HTTP requests
type SettingHandler struct {
	service SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(service SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

type setSettingRequest struct {
	Value       interface{} `json:"value"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
}

// List handles GET /api/settings
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "", settings)
}

// Get handles GET /api/settings/{key}
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	value, ok, err := h.service.Get(r.Context(), key)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if !ok {
		respondWithError(w, http.StatusNotFound, "setting not found")
		return
	}
	respondWithData(w, http.StatusOK, "", map[string]interface{}{"key": key, "value": value})
}

// Set handles PUT /api/settings/{key}
func (h *SettingHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting, err := h.service.Set(r.Context(), r.PathValue("key"), settingValue(req.Value), services.SetOptions{
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, "setting saved", setting)
}
