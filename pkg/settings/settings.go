package settings

import (
	"net/http"
	"time"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
)

// ChatSettings holds the per-chat preferences. Today that is only the IANA
// timezone used to localize reminder evaluation.
type ChatSettings struct {
	ChatID   kernel.ChatID `db:"chat_id" json:"chat_id"`
	Timezone string        `db:"timezone" json:"timezone"`
}

// Resolve turns a stored zone name into a location. Empty or unrecognized
// names fall back to UTC: a bad preference must never make an event inert or
// crash the notification scan.
func Resolve(zone string) *time.Location {
	if zone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location resolves this chat's zone with the UTC fallback.
func (s *ChatSettings) Location() *time.Location {
	return Resolve(s.Timezone)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("SETTINGS")

var (
	CodeInvalidTimezone = ErrRegistry.Register("INVALID_TIMEZONE", errx.TypeValidation, http.StatusBadRequest, "Unknown timezone name")
)

func ErrInvalidTimezone() *errx.Error {
	return ErrRegistry.New(CodeInvalidTimezone)
}
