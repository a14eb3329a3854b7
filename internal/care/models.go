package care

import "time"

// Ward is a monitored party: the person wearing the tracked device.
type Ward struct {
	WardID          string    `gorm:"primaryKey" json:"ward_id"`
	Name            string    `gorm:"not null;size:100" json:"name"`
	BirthDate       *string   `json:"birth_date,omitempty"`
	CareLevel       int       `gorm:"default:1" json:"care_level"`
	PairingStatus   string    `gorm:"default:'paired'" json:"pairing_status"`
	DeviceCode      string    `gorm:"not null;uniqueIndex;size:64" json:"-"`
	CreatedByUserID string    `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Ward) TableName() string { return "care.wards" }
