package eventsrv

import (
	"context"
	"strings"
	"time"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/event"
	"github.com/valentinrios/memora/pkg/kernel"
)

// EventService provides the business operations for reminder events.
type EventService struct {
	eventRepo         event.EventRepository
	defaultNotifyTime string
	now               func() time.Time
}

// NewEventService creates a new event service. defaultNotifyTime is stored
// when the user skips the alert-time question.
func NewEventService(eventRepo event.EventRepository, defaultNotifyTime string) *EventService {
	return &EventService{
		eventRepo:         eventRepo,
		defaultNotifyTime: defaultNotifyTime,
		now:               time.Now,
	}
}

// AddEvent validates and stores a new reminder event.
func (s *EventService) AddEvent(ctx context.Context, req event.AddEventRequest) (*event.Event, error) {
	if _, err := time.Parse(event.DateLayout, req.EventDate); err != nil {
		return nil, event.ErrInvalidDate().
			WithDetail("event_date", req.EventDate).
			WithError(err)
	}

	notifyTime := strings.TrimSpace(req.NotifyTime)
	if strings.EqualFold(notifyTime, "skip") || notifyTime == "" {
		notifyTime = s.defaultNotifyTime
	} else if _, err := time.Parse(event.TimeLayout, notifyTime); err != nil {
		return nil, event.ErrInvalidTime().
			WithDetail("notify_time", notifyTime).
			WithError(err)
	}

	e := &event.Event{
		ChatID:     req.ChatID,
		Name:       req.Name,
		EventDate:  req.EventDate,
		NotifyTime: notifyTime,
	}

	if err := s.eventRepo.Save(ctx, e); err != nil {
		return nil, errx.Wrap(err, "failed to save event", errx.TypeInternal)
	}

	return e, nil
}

// ListEvents returns all events of one chat.
func (s *EventService) ListEvents(ctx context.Context, chatID kernel.ChatID) ([]*event.Event, error) {
	return s.eventRepo.FindByChat(ctx, chatID)
}

// DeleteEvent removes an event scoped to its owner. Returns false when the id
// does not exist for this chat (including ids belonging to other chats).
func (s *EventService) DeleteEvent(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error) {
	return s.eventRepo.Delete(ctx, id, chatID)
}

// Journey computes the elapsed time since the chat's anniversary event.
//
// Elapsed whole days are measured against the server's local clock, not the
// chat's timezone preference; the recurrence engine adjusts for timezones but
// this calculator deliberately does not. The years/months breakdown uses
// 365-day years and 30-day months, a display approximation kept as-is.
func (s *EventService) Journey(ctx context.Context, chatID kernel.ChatID) (*event.Journey, error) {
	anniversary, err := s.eventRepo.FindAnniversary(ctx, chatID)
	if err != nil {
		return nil, err
	}

	start, err := anniversary.Date()
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	totalDays := int(today.Sub(start).Hours() / 24)

	years := totalDays / 365
	remaining := totalDays % 365

	return &event.Journey{
		Years:     years,
		Months:    remaining / 30,
		Days:      remaining % 30,
		TotalDays: totalDays,
	}, nil
}
