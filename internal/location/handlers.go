package location

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/utils"
)

// svc is the process-wide ingestion service, wired in Init.
var svc *Service

type updateResponse struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	Location         *Position `json:"location,omitempty"`
	CareLevel        *int      `json:"care_level,omitempty"`
	AreaExitDetected bool      `json:"area_exit_detected"`
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrRateLimited):
		http.Error(w, "Too many reports", http.StatusTooManyRequests)
	default:
		http.Error(w, "Failed to record position", http.StatusInternalServerError)
	}
}

// WardReportHandler ingests one wearable fix. The wearable middleware has
// already resolved the ward from the device code.
func WardReportHandler(w http.ResponseWriter, r *http.Request) {
	wardID, ok := utils.GetWardIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing ward ID in context", http.StatusUnauthorized)
		return
	}

	var report Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	result, err := svc.ReportWardPosition(r.Context(), wardID, report)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp := updateResponse{
		Success:          true,
		Message:          "Ward position updated",
		Location:         &result.Stored,
		AreaExitDetected: result.AreaExitDetected,
	}
	if ward, err := care.FindByID(wardID); err == nil {
		resp.CareLevel = &ward.CareLevel
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func SupervisorReportHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var report Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	stored, err := svc.ReportSupervisorPosition(r.Context(), userID, report)
	if err != nil {
		writeReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updateResponse{
		Success:  true,
		Message:  "Supervisor position updated",
		Location: &stored,
	})
}

// EmergencyHandler handles the wearable's emergency button.
func EmergencyHandler(w http.ResponseWriter, r *http.Request) {
	wardID, ok := utils.GetWardIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing ward ID in context", http.StatusUnauthorized)
		return
	}

	alert, err := svc.TriggerEmergency(r.Context(), wardID)
	if err != nil {
		http.Error(w, "Failed to trigger emergency", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}

type bothResponse struct {
	SupervisorLocation *Position `json:"supervisor_location"`
	WardLocation       *Position `json:"ward_location"`
}

// BothHandler returns the supervisor's own last fix and their first ward's,
// the pair the map screen renders.
func BothHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var resp bothResponse

	if pos, found, err := svc.Positions.Latest(KindSupervisor, userID); err == nil && found {
		resp.SupervisorLocation = &pos
	}

	if wards, err := care.ListByUser(userID); err == nil && len(wards) > 0 {
		if pos, found, err := svc.Positions.Latest(KindWard, wards[0].WardID); err == nil && found {
			resp.WardLocation = &pos
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
