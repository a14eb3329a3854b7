package notify

import "time"

// PushToken is one delivery endpoint registered by a supervisor's device.
// A supervisor can hold several (phone, tablet); the token string itself is
// the identity, so re-registering a token moves it to its new owner.
type PushToken struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	Token      string    `gorm:"not null;uniqueIndex;size:512" json:"token"`
	DeviceType string    `gorm:"size:20" json:"device_type"` // android, ios, web
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PushToken) TableName() string { return "push.tokens" }
