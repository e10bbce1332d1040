package settingssrv

import (
	"context"
	"time"

	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/settings"
)

// SettingsService provides the business operations for chat preferences.
type SettingsService struct {
	settingsRepo settings.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo settings.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// SetTimezone validates an IANA zone name and stores it, replacing any
// previous preference. Validation happens here so the engine can trust that a
// stored-but-stale zone only ever degrades to the UTC fallback.
func (s *SettingsService) SetTimezone(ctx context.Context, chatID kernel.ChatID, zone string) error {
	if _, err := time.LoadLocation(zone); err != nil || zone == "" {
		return settings.ErrInvalidTimezone().
			WithDetail("timezone", zone).
			WithError(err)
	}
	return s.settingsRepo.Upsert(ctx, chatID, zone)
}

// GetTimezone returns the chat's zone name, "UTC" when none was set.
func (s *SettingsService) GetTimezone(ctx context.Context, chatID kernel.ChatID) (string, error) {
	stored, err := s.settingsRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}
	if stored == nil || stored.Timezone == "" {
		return "UTC", nil
	}
	return stored.Timezone, nil
}
