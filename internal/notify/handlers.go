package notify

import (
	"encoding/json"
	"net/http"

	"github.com/SafeCircle/SC-Backend/internal/utils"
)

type tokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

func RegisterTokenHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: missing user ID in context", http.StatusUnauthorized)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	record, err := UpsertToken(userID, req.Token, req.DeviceType)
	if err != nil {
		http.Error(w, "Failed to register token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func DeactivateTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	found, err := DeactivateToken(req.Token)
	if err != nil {
		http.Error(w, "Failed to deactivate token", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Token not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func DeleteTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	found, err := DeleteToken(req.Token)
	if err != nil {
		http.Error(w, "Failed to delete token", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Token not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
