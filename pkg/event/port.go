package event

import (
	"context"

	"github.com/valentinrios/memora/pkg/kernel"
)

// EventRepository is the persistence contract for events.
type EventRepository interface {
	FindByChat(ctx context.Context, chatID kernel.ChatID) ([]*Event, error)
	// FindAllWithTimezone returns every stored event joined with its owner's
	// timezone preference (empty when unset). The notification scan reads the
	// whole table each tick.
	FindAllWithTimezone(ctx context.Context) ([]*ScheduledEvent, error)
	FindAnniversary(ctx context.Context, chatID kernel.ChatID) (*Event, error)
	Save(ctx context.Context, e *Event) error
	// Delete removes an event only when both id and owner match. Returns
	// false when nothing was deleted, including ids owned by another chat.
	Delete(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error)
}
