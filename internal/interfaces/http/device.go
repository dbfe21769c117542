package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/harsham1998/dashboard-api/internal/domain/notification"
)

type DeviceHandler struct {
	service *notification.Service
}

func NewDeviceHandler(service *notification.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

type RegisterDeviceRequest struct {
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
}

// HandleRegisterDevice serves POST /api/devices.
func (h *DeviceHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	device, err := h.service.RegisterDevice(r.Context(), notification.RegisterDeviceParams{
		Token: req.Token,
		Name:  req.Name,
	})
	if errors.Is(err, notification.ErrInvalidToken) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("Error registering device: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"device":  device,
	})
}

// HandleDeactivateDevice serves DELETE /api/devices/{id}.
func (h *DeviceHandler) HandleDeactivateDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Device ID is required")
		return
	}

	err := h.service.DeactivateDevice(r.Context(), id)
	if errors.Is(err, notification.ErrDeviceNotFound) {
		writeError(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		log.Printf("Error deactivating device %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to deactivate device")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
	})
}
