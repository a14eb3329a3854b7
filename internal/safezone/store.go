package safezone

import (
	"errors"

	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/geo"
	"github.com/SafeCircle/SC-Backend/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidRadius = errors.New("radius out of range")
var ErrInvalidCoordinates = errors.New("coordinates out of range")

func validate(lat, lng, radius float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return ErrInvalidRadius
	}
	return nil
}

// Upsert creates the ward's zone or replaces it in place. Replacing always
// reactivates the zone.
func Upsert(wardID string, zone SafeZone) (SafeZone, error) {
	if err := validate(zone.CenterLat, zone.CenterLng, zone.RadiusMeters); err != nil {
		return SafeZone{}, err
	}

	var existing SafeZone
	err := db.DB.First(&existing, "ward_id = ?", wardID).Error
	if err == nil {
		existing.ZoneName = zone.ZoneName
		existing.CenterLat = zone.CenterLat
		existing.CenterLng = zone.CenterLng
		existing.RadiusMeters = zone.RadiusMeters
		existing.IsActive = true
		if err := db.DB.Save(&existing).Error; err != nil {
			return SafeZone{}, err
		}
		return existing, nil
	}

	zone.ZoneID = utils.GenerateUUID()
	zone.WardID = wardID
	zone.IsActive = true
	if err := db.DB.Create(&zone).Error; err != nil {
		return SafeZone{}, err
	}
	return zone, nil
}

// Get returns the ward's zone. The bool reports whether one exists.
func Get(wardID string) (SafeZone, bool, error) {
	var zone SafeZone
	err := db.DB.First(&zone, "ward_id = ?", wardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SafeZone{}, false, nil
	}
	if err != nil {
		return SafeZone{}, false, err
	}
	return zone, true, nil
}

// ToggleActive flips the zone's active flag and returns the new state.
func ToggleActive(wardID string) (SafeZone, error) {
	var zone SafeZone
	if err := db.DB.First(&zone, "ward_id = ?", wardID).Error; err != nil {
		return SafeZone{}, err
	}
	zone.IsActive = !zone.IsActive
	if err := db.DB.Save(&zone).Error; err != nil {
		return SafeZone{}, err
	}
	return zone, nil
}

// Delete removes the ward's zone. Returns false if there was none.
func Delete(wardID string) (bool, error) {
	res := db.DB.Where("ward_id = ?", wardID).Delete(&SafeZone{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ActiveFor returns the ward's active zones as plain circles for the
// containment check. Inactive zones are excluded.
func ActiveFor(wardID string) ([]geo.Area, error) {
	var zones []SafeZone
	err := db.DB.Where("ward_id = ? AND is_active = ?", wardID, true).Find(&zones).Error
	if err != nil {
		return nil, err
	}

	areas := make([]geo.Area, 0, len(zones))
	for _, z := range zones {
		areas = append(areas, geo.Area{Lat: z.CenterLat, Lng: z.CenterLng, Radius: z.RadiusMeters})
	}
	return areas, nil
}

// HasActive reports whether the ward currently has at least one active zone.
func HasActive(wardID string) (bool, error) {
	var count int64
	err := db.DB.Model(&SafeZone{}).Where("ward_id = ? AND is_active = ?", wardID, true).Count(&count).Error
	return count > 0, err
}

// Directory adapts the zone store to the ingestion service's directory
// interface.
type Directory struct{}

func (Directory) ActiveFor(wardID string) ([]geo.Area, error) { return ActiveFor(wardID) }
func (Directory) HasActive(wardID string) (bool, error)       { return HasActive(wardID) }
