package alerts

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Policy holds the alerting thresholds and per-kind cool-down windows.
// The defaults match the long-standing production values; deployments can
// override them with a YAML file (ALERT_POLICY_FILE) or environment
// variables, env winning over file.
type Policy struct {
	// Reports at or below this battery percentage raise a low-battery alert.
	LowBatteryThreshold int `yaml:"low_battery_threshold"`

	// Minimum time between two accepted alerts of the same kind for the
	// same ward. Area exits repeat quickly around the boundary, so the
	// window is short; battery drains slowly, so its window is long.
	AreaExitCooldown      time.Duration `yaml:"area_exit_cooldown"`
	LowBatteryCooldown    time.Duration `yaml:"low_battery_cooldown"`
	DeviceOfflineCooldown time.Duration `yaml:"device_offline_cooldown"`

	// Emergency button presses are never suppressed.
	EmergencyCooldown time.Duration `yaml:"emergency_cooldown"`
}

func DefaultPolicy() Policy {
	return Policy{
		LowBatteryThreshold:   20,
		AreaExitCooldown:      5 * time.Minute,
		LowBatteryCooldown:    30 * time.Minute,
		DeviceOfflineCooldown: 30 * time.Minute,
		EmergencyCooldown:     0,
	}
}

// CooldownFor returns the policy window for a kind. Unknown kinds fall back
// to the area-exit window, the most conservative of the repeating kinds.
func (p Policy) CooldownFor(kind Kind) time.Duration {
	switch kind {
	case KindAreaExit:
		return p.AreaExitCooldown
	case KindLowBattery:
		return p.LowBatteryCooldown
	case KindDeviceOffline:
		return p.DeviceOfflineCooldown
	case KindEmergencyButton:
		return p.EmergencyCooldown
	default:
		return p.AreaExitCooldown
	}
}

// LoadPolicy builds the effective policy: defaults, then the YAML file named
// by ALERT_POLICY_FILE (if set), then environment variable overrides.
func LoadPolicy() (Policy, error) {
	p := DefaultPolicy()

	if path := os.Getenv("ALERT_POLICY_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Policy{}, fmt.Errorf("read alert policy file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return Policy{}, fmt.Errorf("parse alert policy file: %w", err)
		}
	}

	if v := os.Getenv("ALERT_LOW_BATTERY_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return Policy{}, fmt.Errorf("invalid ALERT_LOW_BATTERY_THRESHOLD: %q", v)
		}
		p.LowBatteryThreshold = n
	}

	for _, override := range []struct {
		env string
		dst *time.Duration
	}{
		{"ALERT_AREA_EXIT_COOLDOWN", &p.AreaExitCooldown},
		{"ALERT_LOW_BATTERY_COOLDOWN", &p.LowBatteryCooldown},
		{"ALERT_DEVICE_OFFLINE_COOLDOWN", &p.DeviceOfflineCooldown},
	} {
		if v := os.Getenv(override.env); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d < 0 {
				return Policy{}, fmt.Errorf("invalid %s: %q", override.env, v)
			}
			*override.dst = d
		}
	}

	return p, nil
}
