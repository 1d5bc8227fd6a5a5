package cache

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// TTL bounds.
const (
	MinTTLSeconds = 1
	MaxTTLSeconds = 604800 // 7 days

	hoursPerDay    = 24
	minutesPerHour = 60
)

// Environment variables consulted by SettingsFromEnv.
const (
	EnvTTLSeconds   = "PAGEDTABLE_CACHE_TTL_SECONDS"
	EnvCacheEnabled = "PAGEDTABLE_CACHE_ENABLED"
	EnvCacheDir     = "PAGEDTABLE_CACHE_DIR"
)

// ErrInvalidTTL reports a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// Settings describes how a FileStore should be opened.
type Settings struct {
	Enabled   bool
	Directory string
	TTL       time.Duration
}

// SettingsFromEnv returns base with any PAGEDTABLE_CACHE_* overrides applied.
// Values that do not parse, or TTLs out of range, leave base untouched.
func SettingsFromEnv(base Settings) Settings {
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			base.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		base.Directory = v
	}
	if v := os.Getenv(EnvTTLSeconds); v != "" {
		if seconds, err := ParseTTL(v); err == nil {
			base.TTL = time.Duration(seconds) * time.Second
		}
	}
	return base
}

// ParseTTL accepts either integer seconds ("300") or a Go duration ("5m").
func ParseTTL(s string) (int, error) {
	s = strings.TrimSpace(s)

	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(d.Seconds())
	}

	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}

// FormatDuration renders d compactly: "45s", "5m", "2h30m", "3d2h".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < hoursPerDay*time.Hour:
		hours := int(d.Hours())
		if minutes := int(d.Minutes()) % minutesPerHour; minutes != 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	default:
		days := int(d.Hours()) / hoursPerDay
		if hours := int(d.Hours()) % hoursPerDay; hours != 0 {
			return fmt.Sprintf("%dd%dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	}
}
