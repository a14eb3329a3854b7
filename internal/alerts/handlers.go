package alerts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

// ListHandler returns the alert history for the supervisor's ward, newest
// first. An optional ?kinds=area_exit,low_battery query restricts the kinds.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	wards, err := care.ListByUser(userID)
	if err != nil || len(wards) == 0 {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}
	wardID := wards[0].WardID

	query := `
		SELECT alert_id, ward_id, kind, message, is_acknowledged, created_at
		FROM alerting.alerts
		WHERE ward_id = ?
	`
	args := []interface{}{wardID}

	if raw := r.URL.Query().Get("kinds"); raw != "" {
		kinds := strings.Split(raw, ",")
		query += " AND kind = ANY(?)"
		args = append(args, pq.Array(kinds))
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := db.DB.WithContext(r.Context()).Raw(query, args...).Rows()
	if err != nil {
		http.Error(w, fmt.Sprintf("alert listing failed: %v", err), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	alerts := []Alert{}
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.AlertID, &a.WardID, &a.Kind, &a.Message, &a.IsAcknowledged, &a.CreatedAt); err != nil {
			http.Error(w, "scan alert failed", http.StatusInternalServerError)
			return
		}
		alerts = append(alerts, a)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alerts)
}

// AcknowledgeHandler marks one alert as acknowledged. Acknowledged alerts no
// longer count toward the dedup window.
func AcknowledgeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	alertID := chi.URLParam(r, "alertID")

	var alert Alert
	if err := db.DB.First(&alert, "alert_id = ?", alertID).Error; err != nil {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}

	// Only the ward's own supervisor may acknowledge.
	supervisor, err := care.SupervisorOf(alert.WardID)
	if err != nil || supervisor != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := db.DB.Model(&alert).Update("is_acknowledged", true).Error; err != nil {
		http.Error(w, "Failed to acknowledge alert", http.StatusInternalServerError)
		return
	}
	alert.IsAcknowledged = true

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}
