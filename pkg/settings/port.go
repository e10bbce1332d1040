package settings

import (
	"context"

	"github.com/valentinrios/memora/pkg/kernel"
)

// SettingsRepository is the persistence contract for chat preferences.
type SettingsRepository interface {
	// Get returns the stored settings, or nil when the chat never set any.
	Get(ctx context.Context, chatID kernel.ChatID) (*ChatSettings, error)
	// Upsert stores the timezone, replacing any previous value. At most one
	// row exists per chat.
	Upsert(ctx context.Context, chatID kernel.ChatID, zone string) error
}
