package main

import (
	"log"
	"net/http"

	httphandlers "github.com/harsham1998/dashboard-api/internal/interfaces/http"
	"github.com/harsham1998/dashboard-api/internal/shared/config"
	"github.com/harsham1998/dashboard-api/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/{$}", httphandlers.HandleRoot)
	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)

	// Test console (dev only)
	mux.HandleFunc("/console", httphandlers.HandleConsole)

	// Tasks
	mux.HandleFunc("/tasks", deps.TaskHandler.HandleTasks)
	mux.HandleFunc("/tasks/{key}", deps.TaskHandler.HandleTaskByPath)

	// Voice assistant
	mux.HandleFunc("/siri/add-task", deps.SiriHandler.HandleAddTask)
	mux.HandleFunc("/siri/addTransaction", deps.SiriHandler.HandleAddTransaction)

	// Transactions
	mux.HandleFunc("/transactions", deps.TransactionHandler.HandleListTransactions)
	mux.HandleFunc("/transactions/{id}", deps.TransactionHandler.HandleGetTransaction)

	// Devices
	mux.HandleFunc("/api/devices", deps.DeviceHandler.HandleRegisterDevice)
	mux.HandleFunc("/api/devices/{id}", deps.DeviceHandler.HandleDeactivateDevice)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(middleware.Tracing(mux)))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.RequireHTTPS(cfg.Server.AllowedHosts)(handler))
		log.Println("TLS security middleware enabled (HSTS + HTTPS redirect)")
	}

	return handler
}
