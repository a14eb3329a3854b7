package location

import "time"

// EntityKind separates the two reporting sides: the supervisor's phone and
// the ward's wearable.
type EntityKind string

const (
	KindSupervisor EntityKind = "supervisor"
	KindWard       EntityKind = "ward"
)

// Position is the last known fix of one entity. There is at most one live
// row per (entity kind, entity id); reports overwrite in place rather than
// accumulate history, because only the latest fix matters for containment
// and alerting.
type Position struct {
	PositionID     string     `gorm:"primaryKey" json:"position_id"`
	EntityKind     EntityKind `gorm:"not null;size:16;uniqueIndex:idx_entity,priority:1" json:"entity_kind"`
	EntityID       string     `gorm:"not null;uniqueIndex:idx_entity,priority:2" json:"entity_id"`
	Latitude       float64    `gorm:"not null" json:"latitude"`
	Longitude      float64    `gorm:"not null" json:"longitude"`
	AccuracyMeters *float64   `json:"accuracy_meters,omitempty"`
	BatteryLevel   *int       `json:"battery_level,omitempty"`
	// InsideSafeZone is set for ward rows only; supervisor rows keep it nil.
	InsideSafeZone *bool     `json:"is_inside_safe_zone,omitempty"`
	RecordedAt     time.Time `gorm:"not null" json:"recorded_at"`
}

func (Position) TableName() string { return "tracking.positions" }

// Report is one incoming position fix.
type Report struct {
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters"`
	BatteryLevel   *int     `json:"battery_level"`
}
