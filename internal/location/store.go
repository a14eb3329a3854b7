package location

import (
	"errors"
	"fmt"
	"time"

	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists last-known positions. Upsert is the single serialization
// point for everything downstream of a report: the row lock guarantees that
// of two concurrent reports for the same entity, exactly one observes the
// other's write as its "previous" state.
type Store struct{}

// Upsert writes the entity's new position and returns the prior record, or
// nil on the first-ever report. inside applies to ward rows: non-nil sets
// the containment flag, nil carries the previous value forward (used when
// the safe-area directory was unreachable and containment is unknown).
// Supervisor rows always pass nil.
func (Store) Upsert(kind EntityKind, entityID string, report Report, inside *bool) (*Position, Position, error) {
	var prev *Position
	var cur Position

	// Two attempts: the second absorbs the race where both of the first two
	// reports for a new entity take the insert path and one loses to the
	// unique index.
	for attempt := 0; attempt < 2; attempt++ {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			var existing Position
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&existing, "entity_kind = ? AND entity_id = ?", kind, entityID).Error

			if err == nil {
				snapshot := existing
				prev = &snapshot

				existing.Latitude = report.Latitude
				existing.Longitude = report.Longitude
				existing.AccuracyMeters = report.AccuracyMeters
				existing.BatteryLevel = report.BatteryLevel
				if inside != nil {
					existing.InsideSafeZone = inside
				}
				existing.RecordedAt = time.Now()

				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				cur = existing
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			cur = Position{
				PositionID:     utils.GenerateUUID(),
				EntityKind:     kind,
				EntityID:       entityID,
				Latitude:       report.Latitude,
				Longitude:      report.Longitude,
				AccuracyMeters: report.AccuracyMeters,
				BatteryLevel:   report.BatteryLevel,
				InsideSafeZone: inside,
				RecordedAt:     time.Now(),
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cur)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost the first-insert race; retry through the update path.
				return errLostInsertRace
			}
			prev = nil
			return nil
		})

		if err == nil {
			return prev, cur, nil
		}
		if !errors.Is(err, errLostInsertRace) {
			return nil, Position{}, fmt.Errorf("position upsert for %s %s: %w", kind, entityID, err)
		}
	}

	return nil, Position{}, fmt.Errorf("position upsert for %s %s: lost insert race twice", kind, entityID)
}

var errLostInsertRace = errors.New("lost insert race")

// Latest returns the entity's last known position. The bool reports whether
// one exists.
func (Store) Latest(kind EntityKind, entityID string) (Position, bool, error) {
	var pos Position
	err := db.DB.First(&pos, "entity_kind = ? AND entity_id = ?", kind, entityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, err
	}
	return pos, true, nil
}
