package alerts

import "time"

// Kind classifies an alert.
type Kind string

const (
	KindAreaExit        Kind = "area_exit"
	KindLowBattery      Kind = "low_battery"
	KindEmergencyButton Kind = "emergency_button"
	KindDeviceOffline   Kind = "device_offline"
)

// Alert is an immutable record of one accepted alert event. Only the
// acknowledged flag ever changes after creation.
type Alert struct {
	AlertID        string    `gorm:"primaryKey" json:"alert_id"`
	WardID         string    `gorm:"not null;index:idx_ward_kind_time,priority:1" json:"ward_id"`
	Kind           Kind      `gorm:"not null;size:32;index:idx_ward_kind_time,priority:2" json:"kind"`
	Message        string    `gorm:"type:text" json:"message"`
	IsAcknowledged bool      `gorm:"default:false" json:"is_acknowledged"`
	CreatedAt      time.Time `gorm:"index:idx_ward_kind_time,priority:3" json:"created_at"`
}

func (Alert) TableName() string { return "alerting.alerts" }
