package alerts

import (
	"fmt"
	"log"
	"time"

	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/utils"
)

// Store is the persistence surface the deduplicator needs. The gorm-backed
// implementation below is the production one; tests supply their own.
type Store interface {
	// RecentExists reports whether an unacknowledged alert of the same
	// (ward, kind) was created at or after the cutoff.
	RecentExists(wardID string, kind Kind, cutoff time.Time) (bool, error)
	Create(alert *Alert) error
}

// WardNamer resolves a ward id to its display name for alert messages.
// A not-found result aborts emission silently.
type WardNamer interface {
	WardName(wardID string) (string, error)
}

// Deduper decides whether an alert candidate becomes a persisted Alert.
//
// The suppression check is a time-bounded existence query, not a lock: two
// near-simultaneous candidates for the same (ward, kind) can both pass it
// and both persist. That is accepted — the guarantee is
// at-most-one-with-high-probability inside the window, and a duplicate
// alert is harmless while a dropped one is not.
type Deduper struct {
	Store  Store
	Wards  WardNamer
	Policy Policy

	// now is swappable in tests.
	now func() time.Time
}

func NewDeduper(store Store, wards WardNamer, policy Policy) *Deduper {
	return &Deduper{Store: store, Wards: wards, Policy: policy, now: time.Now}
}

// MaybeEmit persists a new alert of the given kind unless one of the same
// kind for the same ward is still inside its cool-down window. It returns
// nil (and no error) when the candidate is suppressed or the ward cannot be
// resolved.
func (d *Deduper) MaybeEmit(wardID string, kind Kind, message string) (*Alert, error) {
	window := d.Policy.CooldownFor(kind)
	if window > 0 {
		cutoff := d.clock()().Add(-window)
		exists, err := d.Store.RecentExists(wardID, kind, cutoff)
		if err != nil {
			return nil, fmt.Errorf("dedup check for ward %s kind %s: %w", wardID, kind, err)
		}
		if exists {
			return nil, nil
		}
	}

	if _, err := d.Wards.WardName(wardID); err != nil {
		// Ward vanished between detection and emission; drop quietly.
		log.Printf("[alerts] ward %s not found, dropping %s alert", wardID, kind)
		return nil, nil
	}

	alert := &Alert{
		AlertID:   utils.GenerateUUID(),
		WardID:    wardID,
		Kind:      kind,
		Message:   message,
		CreatedAt: d.clock()(),
	}
	if err := d.Store.Create(alert); err != nil {
		return nil, fmt.Errorf("persist %s alert for ward %s: %w", kind, wardID, err)
	}
	return alert, nil
}

func (d *Deduper) clock() func() time.Time {
	if d.now != nil {
		return d.now
	}
	return time.Now
}

// GormStore implements Store on the shared database handle.
type GormStore struct{}

func (GormStore) RecentExists(wardID string, kind Kind, cutoff time.Time) (bool, error) {
	var count int64
	err := db.DB.Model(&Alert{}).
		Where("ward_id = ? AND kind = ? AND is_acknowledged = ? AND created_at >= ?",
			wardID, kind, false, cutoff).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (GormStore) Create(alert *Alert) error {
	return db.DB.Create(alert).Error
}
