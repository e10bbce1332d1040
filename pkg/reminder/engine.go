package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/valentinrios/memora/pkg/event"
	"github.com/valentinrios/memora/pkg/logx"
	"github.com/valentinrios/memora/pkg/settings"
)

// Engine is the recurrence and notification core. Each Tick is a complete,
// stateless re-evaluation of every stored event against the owner's local
// clock: no notified-state is persisted, no memory crosses tick boundaries.
type Engine struct {
	eventRepo event.EventRepository
	notifier  Notifier
	clock     Clock
}

// NewEngine creates the notification engine.
func NewEngine(eventRepo event.EventRepository, notifier Notifier, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		eventRepo: eventRepo,
		notifier:  notifier,
		clock:     clock,
	}
}

// Tick evaluates every event once. Per-event failures (malformed dates,
// unknown zones, delivery errors) are isolated: they are logged and the scan
// moves on. Tick itself never returns an error to its scheduler; a failed
// snapshot read simply skips this round.
func (e *Engine) Tick(ctx context.Context) {
	tickID := uuid.NewString()
	now := e.clock.Now()

	events, err := e.eventRepo.FindAllWithTimezone(ctx)
	if err != nil {
		logx.Errorf("reminder tick %s: snapshot failed: %v", tickID, err)
		return
	}

	logx.WithFields(logx.Fields{"tick": tickID, "events": len(events)}).
		Debugf("reminder scan")

	sent := 0
	for _, se := range events {
		if e.evaluate(ctx, se, now) {
			sent++
		}
	}

	if sent > 0 {
		logx.WithFields(logx.Fields{"tick": tickID, "sent": sent}).
			Infof("reminders delivered")
	}
}

// evaluate runs the per-event algorithm and reports whether a notification
// was delivered.
func (e *Engine) evaluate(ctx context.Context, se *event.ScheduledEvent, now time.Time) bool {
	loc := settings.Resolve(se.Timezone)
	localNow := now.In(loc)

	// Time gate: the zero-padded local HH:MM must equal the stored alert
	// time exactly. The scheduler runs at least once per minute, so every
	// minute is observed exactly within its window.
	if localNow.Format(event.TimeLayout) != se.NotifyTime {
		return false
	}

	daysUntil, err := se.DaysUntil(localNow)
	if err != nil {
		// Malformed stored date: inert this tick, never fatal to the batch.
		logx.WithFields(logx.Fields{"event_id": se.ID, "chat_id": se.ChatID}).
			Warnf("skipping event with unparseable date %q", se.EventDate)
		return false
	}

	msg, ok := messageFor(se.Name, daysUntil)
	if !ok {
		return false
	}

	if err := e.notifier.Send(ctx, se.ChatID, msg); err != nil {
		// Delivery failures are the channel's concern; one unreachable chat
		// must not silence the rest of the tick.
		logx.WithFields(logx.Fields{"event_id": se.ID, "chat_id": se.ChatID}).
			Errorf("failed to deliver reminder: %v", err)
		return false
	}

	return true
}
