package location_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/SafeCircle/SC-Backend/internal/alerts"
	"github.com/SafeCircle/SC-Backend/internal/auth"
	"github.com/SafeCircle/SC-Backend/internal/care"
	"github.com/SafeCircle/SC-Backend/internal/db"
	"github.com/SafeCircle/SC-Backend/internal/location"
	"github.com/SafeCircle/SC-Backend/internal/middleware"
	"github.com/SafeCircle/SC-Backend/internal/notify"
	"github.com/SafeCircle/SC-Backend/internal/safezone"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up).
	_ = godotenv.Load("../../.env.local")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// No database available — run the unit tests only.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	auth.Init()
	care.Init()
	safezone.Init()
	alerts.Init()
	notify.Init()

	policy := alerts.DefaultPolicy()
	deduper := alerts.NewDeduper(alerts.GormStore{}, alerts.WardDirectory{}, policy)
	notifier := notify.NewNotifier(nil, notify.CareResolver{}, notify.TokenStore{})
	service := location.NewService(
		location.Store{},
		safezone.Directory{},
		deduper,
		notifier,
		alerts.WardDirectory{},
		policy,
	)
	location.Init(service)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Mount("/location", location.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestWard inserts a supervisor + paired ward + active 100 m safe zone
// around Seoul City Hall, with cleanup. Returns the ward id and device code.
func createTestWard(t *testing.T) (wardID, deviceCode string) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	user := auth.User{
		UserID:   uuid.NewString(),
		Username: fmt.Sprintf("sup_%s", uuid.NewString()[:8]),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create supervisor: %v", err)
	}

	ward := care.Ward{
		WardID:          uuid.NewString(),
		Name:            "Integration Ward",
		DeviceCode:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		CreatedByUserID: user.UserID,
	}
	if err := db.DB.Create(&ward).Error; err != nil {
		t.Fatalf("failed to create ward: %v", err)
	}

	zone := safezone.SafeZone{
		ZoneID:       uuid.NewString(),
		WardID:       ward.WardID,
		ZoneName:     "Home",
		CenterLat:    37.5665,
		CenterLng:    126.9780,
		RadiusMeters: 100,
		IsActive:     true,
	}
	if err := db.DB.Create(&zone).Error; err != nil {
		t.Fatalf("failed to create safe zone: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("ward_id = ?", ward.WardID).Delete(&alerts.Alert{})
		db.DB.Where("entity_id = ?", ward.WardID).Delete(&location.Position{})
		db.DB.Where("ward_id = ?", ward.WardID).Delete(&safezone.SafeZone{})
		db.DB.Where("ward_id = ?", ward.WardID).Delete(&care.Ward{})
		db.DB.Where("user_id = ?", user.UserID).Delete(&auth.User{})
	})

	return ward.WardID, ward.DeviceCode
}

// postWardReport posts one wearable fix with the device code as bearer token.
func postWardReport(t *testing.T, deviceCode string, lat, lng float64) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]float64{
		"latitude":  lat,
		"longitude": lng,
	})
	req, err := http.NewRequest(http.MethodPost, testServer.URL+"/location/ward", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+deviceCode)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /location/ward: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

// TestWardReportRoundTrip verifies the full ingestion path: a report at the
// zone center stores contained=true, a follow-up ~150 m away flags an area
// exit and persists exactly one area-exit alert.
func TestWardReportRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	wardID, deviceCode := createTestWard(t)

	resp := postWardReport(t, deviceCode, 37.5665, 126.9780)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	var first struct {
		Location struct {
			InsideSafeZone *bool `json:"is_inside_safe_zone"`
		} `json:"location"`
		AreaExitDetected bool `json:"area_exit_detected"`
	}
	if err := json.Unmarshal([]byte(body), &first); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if first.Location.InsideSafeZone == nil || !*first.Location.InsideSafeZone {
		t.Error("report at the zone center should store contained=true")
	}
	if first.AreaExitDetected {
		t.Error("first report must not detect an area exit")
	}

	// ~150 m north of the center.
	resp = postWardReport(t, deviceCode, 37.5665+0.00135, 126.9780)
	body = readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", resp.StatusCode, body)
	}

	var second struct {
		AreaExitDetected bool `json:"area_exit_detected"`
	}
	if err := json.Unmarshal([]byte(body), &second); err != nil {
		t.Fatalf("invalid JSON body: %s", body)
	}
	if !second.AreaExitDetected {
		t.Error("leaving the zone should detect an area exit")
	}

	var count int64
	if err := db.DB.Model(&alerts.Alert{}).
		Where("ward_id = ? AND kind = ?", wardID, alerts.KindAreaExit).
		Count(&count).Error; err != nil {
		t.Fatalf("count alerts: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 persisted area-exit alert, got %d", count)
	}
}

// TestWardReportRejectsBadCoordinates verifies the validation taxonomy: an
// out-of-range latitude is rejected before touching the state store.
func TestWardReportRejectsBadCoordinates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	wardID, deviceCode := createTestWard(t)

	resp := postWardReport(t, deviceCode, 95.0, 126.9780)
	readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var count int64
	if err := db.DB.Model(&location.Position{}).
		Where("entity_id = ?", wardID).
		Count(&count).Error; err != nil {
		t.Fatalf("count positions: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected report must not be stored, found %d rows", count)
	}
}

// TestWardReportUnknownDeviceCode verifies that an unpaired device code is
// rejected with 401.
func TestWardReportUnknownDeviceCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp := postWardReport(t, "not-a-real-device-code", 37.5665, 126.9780)
	readBody(t, resp)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
