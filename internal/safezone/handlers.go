package safezone

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
)

// wardForRequest resolves the logged-in supervisor's first ward, matching the
// single-ward flow of the mobile app.
func wardForRequest(r *http.Request) (care.Ward, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return care.Ward{}, false
	}
	wards, err := care.ListByUser(userID)
	if err != nil || len(wards) == 0 {
		return care.Ward{}, false
	}
	return wards[0], true
}

func UpsertHandler(w http.ResponseWriter, r *http.Request) {
	ward, ok := wardForRequest(r)
	if !ok {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}

	var zone SafeZone
	if err := json.NewDecoder(r.Body).Decode(&zone); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if zone.ZoneName == "" {
		zone.ZoneName = "Home"
	}

	saved, err := Upsert(ward.WardID, zone)
	if err != nil {
		if errors.Is(err, ErrInvalidRadius) || errors.Is(err, ErrInvalidCoordinates) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to save safe zone", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	ward, ok := wardForRequest(r)
	if !ok {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}

	zone, found, err := Get(ward.WardID)
	if err != nil {
		http.Error(w, "Failed to load safe zone", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Safe zone not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zone)
}

// PatchHandler updates only the provided fields of the existing zone.
func PatchHandler(w http.ResponseWriter, r *http.Request) {
	ward, ok := wardForRequest(r)
	if !ok {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}

	var patch struct {
		ZoneName     *string  `json:"zone_name"`
		CenterLat    *float64 `json:"center_latitude"`
		CenterLng    *float64 `json:"center_longitude"`
		RadiusMeters *float64 `json:"radius_meters"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	zone, found, err := Get(ward.WardID)
	if err != nil || !found {
		http.Error(w, "Safe zone not found", http.StatusNotFound)
		return
	}

	if patch.ZoneName != nil {
		zone.ZoneName = *patch.ZoneName
	}
	if patch.CenterLat != nil {
		zone.CenterLat = *patch.CenterLat
	}
	if patch.CenterLng != nil {
		zone.CenterLng = *patch.CenterLng
	}
	if patch.RadiusMeters != nil {
		zone.RadiusMeters = *patch.RadiusMeters
	}
	if patch.IsActive != nil {
		zone.IsActive = *patch.IsActive
	}

	if err := validate(zone.CenterLat, zone.CenterLng, zone.RadiusMeters); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.DB.Save(&zone).Error; err != nil {
		http.Error(w, "Failed to update safe zone", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zone)
}

func ToggleHandler(w http.ResponseWriter, r *http.Request) {
	ward, ok := wardForRequest(r)
	if !ok {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}

	zone, err := ToggleActive(ward.WardID)
	if err != nil {
		http.Error(w, "Safe zone not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(zone)
}

func DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ward, ok := wardForRequest(r)
	if !ok {
		http.Error(w, "No ward registered for this account", http.StatusNotFound)
		return
	}

	deleted, err := Delete(ward.WardID)
	if err != nil {
		http.Error(w, "Failed to delete safe zone", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Safe zone not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
