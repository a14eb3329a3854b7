package safezone

// SafeZone is a circular region a ward is expected to stay inside.
// A ward usually has exactly one zone ("Home"), but nothing in the
// containment logic depends on that.
type SafeZone struct {
	ZoneID       string  `gorm:"primaryKey" json:"zone_id"`
	WardID       string  `gorm:"not null;index" json:"ward_id"`
	ZoneName     string  `gorm:"size:100;default:'Home'" json:"zone_name"`
	CenterLat    float64 `gorm:"not null" json:"center_latitude"`
	CenterLng    float64 `gorm:"not null" json:"center_longitude"`
	RadiusMeters float64 `gorm:"not null;default:100" json:"radius_meters"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
}

func (SafeZone) TableName() string { return "care.safe_zones" }

// Radius bounds, meters. Anything tighter than 10 m is GPS noise, anything
// wider than 5 km is not a meaningful safe area.
const (
	MinRadiusMeters = 10
	MaxRadiusMeters = 5000
)
