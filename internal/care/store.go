package care

import (
	"github.com/SafeCircle/SC-Backend/internal/db"
)

// FindByID returns the ward with the given id, or an error if none exists.
func FindByID(wardID string) (Ward, error) {
	var ward Ward
	err := db.DB.First(&ward, "ward_id = ?", wardID).Error
	return ward, err
}

// ListByUser returns every ward created by the given supervisor.
func ListByUser(userID string) ([]Ward, error) {
	var wards []Ward
	err := db.DB.Where("created_by_user_id = ?", userID).Order("created_at").Find(&wards).Error
	return wards, err
}

// SupervisorOf resolves the supervising user responsible for a ward.
func SupervisorOf(wardID string) (string, error) {
	ward, err := FindByID(wardID)
	if err != nil {
		return "", err
	}
	return ward.CreatedByUserID, nil
}

// DeviceCodeFetcher implements middleware.WardFetcher against the wards table.
type DeviceCodeFetcher struct{}

func (DeviceCodeFetcher) FindWardByDeviceCode(code string) (string, error) {
	var ward Ward
	err := db.DB.First(&ward, "device_code = ?", code).Error
	if err != nil {
		return "", err
	}
	return ward.WardID, nil
}
