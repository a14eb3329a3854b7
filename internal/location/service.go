package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SafeCircle/SC-Backend/internal/alerts"
	"github.com/SafeCircle/SC-Backend/internal/geo"
	"golang.org/x/time/rate"
)

var (
	ErrValidation  = errors.New("report failed validation")
	ErrRateLimited = errors.New("too many reports")
)

// PositionStore is the atomic last-writer-wins position state.
type PositionStore interface {
	Upsert(kind EntityKind, entityID string, report Report, inside *bool) (*Position, Position, error)
	Latest(kind EntityKind, entityID string) (Position, bool, error)
}

// ZoneDirectory supplies the ward's active safe areas.
type ZoneDirectory interface {
	ActiveFor(wardID string) ([]geo.Area, error)
	HasActive(wardID string) (bool, error)
}

// AlertEmitter is the deduplicating alert pipeline.
type AlertEmitter interface {
	MaybeEmit(wardID string, kind alerts.Kind, message string) (*alerts.Alert, error)
}

// WardNotifier fans a notification out to the ward's supervisor endpoints.
type WardNotifier interface {
	Notify(ctx context.Context, wardID, title, body string, data map[string]string) (int, error)
}

// WardDirectory resolves ward display names for alert messages.
type WardDirectory interface {
	WardName(wardID string) (string, error)
}

// Service is the ingestion orchestrator. One instance serves all entities;
// reports for different entities proceed concurrently, and the position
// store's row lock is the only serialization point per entity.
type Service struct {
	Positions PositionStore
	Zones     ZoneDirectory
	Alerts    AlertEmitter
	Notifier  WardNotifier
	Wards     WardDirectory
	Policy    alerts.Policy

	limiters sync.Map // entity key -> *rate.Limiter
}

func NewService(positions PositionStore, zones ZoneDirectory, emitter AlertEmitter, notifier WardNotifier, wards WardDirectory, policy alerts.Policy) *Service {
	return &Service{
		Positions: positions,
		Zones:     zones,
		Alerts:    emitter,
		Notifier:  notifier,
		Wards:     wards,
		Policy:    policy,
	}
}

// Wearables report every few seconds at most; anything faster is a
// misbehaving client.
const (
	reportInterval = time.Second
	reportBurst    = 5
)

func (s *Service) allow(kind EntityKind, entityID string) bool {
	key := string(kind) + ":" + entityID
	v, _ := s.limiters.LoadOrStore(key, rate.NewLimiter(rate.Every(reportInterval), reportBurst))
	return v.(*rate.Limiter).Allow()
}

func validateReport(report Report) error {
	if report.Latitude < -90 || report.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f", ErrValidation, report.Latitude)
	}
	if report.Longitude < -180 || report.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f", ErrValidation, report.Longitude)
	}
	if report.BatteryLevel != nil && (*report.BatteryLevel < 0 || *report.BatteryLevel > 100) {
		return fmt.Errorf("%w: battery level %d", ErrValidation, *report.BatteryLevel)
	}
	if report.AccuracyMeters != nil && *report.AccuracyMeters < 0 {
		return fmt.Errorf("%w: accuracy %f", ErrValidation, *report.AccuracyMeters)
	}
	return nil
}

// WardResult describes what one ward report caused.
type WardResult struct {
	Stored           Position
	AreaExitDetected bool
}

// ReportWardPosition ingests one wearable fix: computes containment, stores
// the position atomically, detects an inside-to-outside transition, and runs
// the area-exit and low-battery alert pipelines. The two alert axes are
// independent; both can fire on the same report. Alerting and delivery
// failures never fail the ingestion itself.
func (s *Service) ReportWardPosition(ctx context.Context, wardID string, report Report) (WardResult, error) {
	if err := validateReport(report); err != nil {
		return WardResult{}, err
	}
	if !s.allow(KindWard, wardID) {
		return WardResult{}, ErrRateLimited
	}

	// Containment from the union of active areas. If the directory is
	// unreachable the previous flag is carried forward unchanged, so a
	// transient outage can neither fire nor mask a breach.
	var inside *bool
	areas, zoneErr := s.Zones.ActiveFor(wardID)
	if zoneErr != nil {
		log.Printf("[location] safe-area lookup for ward %s failed, carrying containment forward: %v", wardID, zoneErr)
	} else {
		contained := geo.ContainedInAny(report.Latitude, report.Longitude, areas)
		inside = &contained
	}

	prev, cur, err := s.Positions.Upsert(KindWard, wardID, report, inside)
	if err != nil {
		return WardResult{}, err
	}

	result := WardResult{Stored: cur}

	if inside != nil {
		var prevInside *bool
		if prev != nil {
			prevInside = prev.InsideSafeZone
		}
		if DetectBreach(prevInside, *inside) {
			result.AreaExitDetected = true
			s.emitAreaExit(ctx, wardID)
		}
	}

	if report.BatteryLevel != nil && *report.BatteryLevel <= s.Policy.LowBatteryThreshold {
		s.emitLowBattery(ctx, wardID, *report.BatteryLevel)
	}

	return result, nil
}

// ReportSupervisorPosition ingests one fix from the supervisor's phone.
// Supervisor rows carry no containment flag and feed no alert pipeline.
func (s *Service) ReportSupervisorPosition(ctx context.Context, userID string, report Report) (Position, error) {
	if err := validateReport(report); err != nil {
		return Position{}, err
	}
	if !s.allow(KindSupervisor, userID) {
		return Position{}, ErrRateLimited
	}

	_, cur, err := s.Positions.Upsert(KindSupervisor, userID, report, nil)
	return cur, err
}

// TriggerEmergency feeds a wearable emergency-button press through the same
// alert pipeline. Emergencies have no cool-down and always notify.
func (s *Service) TriggerEmergency(ctx context.Context, wardID string) (*alerts.Alert, error) {
	name, err := s.Wards.WardName(wardID)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s pressed the emergency button.", name)
	alert, err := s.Alerts.MaybeEmit(wardID, alerts.KindEmergencyButton, message)
	if err != nil || alert == nil {
		return alert, err
	}

	s.push(ctx, wardID, "Emergency alert", message, map[string]string{
		"type":    string(alerts.KindEmergencyButton),
		"ward_id": wardID,
	})
	return alert, nil
}

func (s *Service) emitAreaExit(ctx context.Context, wardID string) {
	name, err := s.Wards.WardName(wardID)
	if err != nil {
		log.Printf("[location] ward %s not found, skipping area-exit alert", wardID)
		return
	}

	message := fmt.Sprintf("%s has left the safe zone.", name)
	alert, err := s.Alerts.MaybeEmit(wardID, alerts.KindAreaExit, message)
	if err != nil {
		log.Printf("[location] area-exit alert for ward %s failed: %v", wardID, err)
		return
	}
	if alert == nil {
		return
	}

	// The breach is recorded either way; push goes out only while a zone is
	// still active. Deactivating the zone silences phones, not the history.
	active, err := s.Zones.HasActive(wardID)
	if err != nil {
		log.Printf("[location] active-zone check for ward %s failed: %v", wardID, err)
		return
	}
	if !active {
		log.Printf("[location] ward %s has no active zone, alert recorded without push", wardID)
		return
	}

	s.push(ctx, wardID, "Safe zone alert", message, map[string]string{
		"type":      string(alerts.KindAreaExit),
		"ward_id":   wardID,
		"ward_name": name,
	})
}

func (s *Service) emitLowBattery(ctx context.Context, wardID string, level int) {
	name, err := s.Wards.WardName(wardID)
	if err != nil {
		log.Printf("[location] ward %s not found, skipping low-battery alert", wardID)
		return
	}

	message := fmt.Sprintf("%s's watch battery is at %d%%.", name, level)
	alert, err := s.Alerts.MaybeEmit(wardID, alerts.KindLowBattery, message)
	if err != nil {
		log.Printf("[location] low-battery alert for ward %s failed: %v", wardID, err)
		return
	}
	if alert == nil {
		return
	}

	s.push(ctx, wardID, "Low battery alert", message, map[string]string{
		"type":          string(alerts.KindLowBattery),
		"ward_id":       wardID,
		"ward_name":     name,
		"battery_level": fmt.Sprintf("%d", level),
	})
}

// push delivers best-effort; a failed or skipped delivery never rolls back
// the already-persisted alert.
func (s *Service) push(ctx context.Context, wardID, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	delivered, err := s.Notifier.Notify(ctx, wardID, title, body, data)
	if err != nil {
		log.Printf("[location] notification for ward %s failed: %v", wardID, err)
		return
	}
	if delivered == 0 {
		log.Printf("[location] no deliveries for ward %s", wardID)
	}
}
