package notify

import (
	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
)

// UpsertToken registers a push token for a user. Registration is idempotent
// and keyed by the token string: a token already on file is reactivated, and
// one registered under a different user is re-owned by the caller.
func UpsertToken(userID, token, deviceType string) (PushToken, error) {
	var existing PushToken
	err := db.DB.First(&existing, "token = ?", token).Error
	if err == nil {
		existing.UserID = userID
		existing.DeviceType = deviceType
		existing.IsActive = true
		if err := db.DB.Save(&existing).Error; err != nil {
			return PushToken{}, err
		}
		return existing, nil
	}

	record := PushToken{
		ID:         utils.GenerateUUID(),
		UserID:     userID,
		Token:      token,
		DeviceType: deviceType,
		IsActive:   true,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		return PushToken{}, err
	}
	return record, nil
}

// ActiveTokensFor returns the active endpoint tokens of a supervisor.
func ActiveTokensFor(userID string) ([]string, error) {
	var records []PushToken
	err := db.DB.Where("user_id = ? AND is_active = ?", userID, true).Find(&records).Error
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(records))
	for _, rec := range records {
		tokens = append(tokens, rec.Token)
	}
	return tokens, nil
}

// DeactivateToken marks a token inactive. Returns false if unknown.
func DeactivateToken(token string) (bool, error) {
	res := db.DB.Model(&PushToken{}).Where("token = ?", token).Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteToken removes a token entirely. Returns false if unknown.
func DeleteToken(token string) (bool, error) {
	res := db.DB.Where("token = ?", token).Delete(&PushToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
