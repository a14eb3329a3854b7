package location

import (
	"net/http"

	"github.com/SafeCircle/SC-Backend/internal/auth"
	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}
	deviceFetcher := care.DeviceCodeFetcher{}

	// Wearable surface: authenticated by device code, not session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.WearableMiddleware(deviceFetcher))
		r.Post("/ward", WardReportHandler)
		r.Post("/ward/emergency", EmergencyHandler)
	})

	// Supervisor surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/supervisor", SupervisorReportHandler)
		r.Get("/both", BothHandler)
	})

	return r
}
