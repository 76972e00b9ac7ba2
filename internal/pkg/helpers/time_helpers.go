package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
// "0" and "" are treated as a zero duration.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" || durationStr == "0" {
		return 0
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DerefString returns "" for a nil pointer.
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for blank strings so optional columns store NULL.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
