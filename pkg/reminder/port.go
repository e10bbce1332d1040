package reminder

import (
	"context"
	"time"

	"github.com/valentinrios/memora/pkg/kernel"
)

// Notifier is the outbound delivery channel. Send delivers one HTML-formatted
// message to a chat; retry policy for transient failures belongs to the
// implementation, never to the engine.
type Notifier interface {
	Send(ctx context.Context, chatID kernel.ChatID, html string) error
}

// Clock abstracts "now" so the engine can be driven through exact instants in
// tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
