package care

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func CreateWardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var ward Ward
	if err := json.NewDecoder(r.Body).Decode(&ward); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(ward.Name) == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	ward.WardID = utils.GenerateUUID()
	ward.CreatedByUserID = userID
	// The wearable presents this code as its bearer credential.
	ward.DeviceCode = strings.ReplaceAll(utils.GenerateUUID(), "-", "")

	if err := db.DB.Create(&ward).Error; err != nil {
		http.Error(w, "Failed to create ward", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"ward_id":     ward.WardID,
		"device_code": ward.DeviceCode,
	})
}

func ListWardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	wards, err := ListByUser(userID)
	if err != nil {
		http.Error(w, "Failed to list wards", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wards)
}

// DeleteWardHandler deregisters the supervisor's ward and everything hanging
// off it: safe zones, position rows, and alert history go with the ward.
func DeleteWardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	wardID := chi.URLParam(r, "wardID")
	ward, err := FindByID(wardID)
	if err != nil {
		http.Error(w, "Ward not found", http.StatusNotFound)
		return
	}
	if ward.CreatedByUserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			`DELETE FROM alerting.alerts WHERE ward_id = ?`,
			`DELETE FROM tracking.positions WHERE entity_kind = 'ward' AND entity_id = ?`,
			`DELETE FROM care.safe_zones WHERE ward_id = ?`,
			`DELETE FROM care.wards WHERE ward_id = ?`,
		} {
			if err := tx.Exec(stmt, wardID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Failed to delete ward", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetWardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	wardID := chi.URLParam(r, "wardID")
	ward, err := FindByID(wardID)
	if err != nil {
		http.Error(w, "Ward not found", http.StatusNotFound)
		return
	}
	if ward.CreatedByUserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ward)
}
