package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/harsham1998/dashboard-api/internal/web"
)

// HandleRoot returns API information, mirroring what the dashboard web
// page shows on its landing check.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "Dashboard API Server Running",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /tasks":               "Get all tasks",
			"POST /tasks":              "Add new task",
			"GET /tasks/{date}":        "Get tasks for specific date",
			"PATCH /tasks/{id}":        "Update a task",
			"GET /siri/add-task":       "Add task via Siri (text query param)",
			"GET /siri/addTransaction": "Add transaction via Siri (message param)",
			"GET /transactions":        "Get recent transactions",
			"GET /transactions/{id}":   "Get one transaction",
			"POST /api/devices":        "Register a device for push notifications",
			"DELETE /api/devices/{id}": "Deactivate a device",
		},
		"time": time.Now().Format(time.RFC3339),
	})
}

// StorageProbe checks that the storage backend is reachable.
type StorageProbe func(ctx context.Context) error

// HealthHandler answers /health, probing storage on every call.
type HealthHandler struct {
	probe StorageProbe
}

func NewHealthHandler(probe StorageProbe) *HealthHandler {
	return &HealthHandler{probe: probe}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	storage := "active"
	status := http.StatusOK

	if h.probe != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.probe(ctx); err != nil {
			log.Printf("Health check storage probe failed: %v", err)
			storage = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	healthy := "healthy"
	if status != http.StatusOK {
		healthy = "degraded"
	}

	writeJSON(w, status, map[string]any{
		"status":    healthy,
		"timestamp": time.Now().Format(time.RFC3339),
		"storage":   storage,
	})
}

// HandleConsole serves the embedded test console page.
func HandleConsole(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.FS, "console.html")
}
