package event

import (
	"net/http"
	"strings"
	"time"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
)

// DateLayout is the calendar format users type and the store keeps.
const DateLayout = "02-01-2006"

// TimeLayout is the 24-hour alert time format.
const TimeLayout = "15:04"

// AnniversaryPrefix marks the canonical relationship-start event. The first
// event (by id) whose name begins with this token feeds the journey
// calculator. A loose naming convention, kept for compatibility with the
// stored data; when several events match, the lowest id wins.
const AnniversaryPrefix = "Anniversary"

// ============================================================================
// Event Entity
// ============================================================================

// Event is one stored reminder: an annually recurring calendar date plus the
// local time of day at which it should be announced.
type Event struct {
	ID         int64         `db:"id" json:"id"`
	ChatID     kernel.ChatID `db:"chat_id" json:"chat_id"`
	Name       string        `db:"name" json:"name"`
	EventDate  string        `db:"event_date" json:"event_date"`   // DD-MM-YYYY
	NotifyTime string        `db:"notify_time" json:"notify_time"` // HH:MM
}

// Date parses the stored calendar date. Records that fail to parse are inert
// for notification purposes; callers skip them rather than failing a batch.
func (e *Event) Date() (time.Time, error) {
	d, err := time.Parse(DateLayout, e.EventDate)
	if err != nil {
		return time.Time{}, ErrInvalidDate().
			WithDetail("event_date", e.EventDate).
			WithError(err)
	}
	return d, nil
}

// IsAnniversary reports whether this event is the relationship zero-point.
func (e *Event) IsAnniversary() bool {
	return strings.HasPrefix(e.Name, AnniversaryPrefix)
}

// NextOccurrence projects the event onto its next annual occurrence on or
// after today: same month/day with today's year, bumped one year when that
// date has already passed. A Feb 29 source date normalizes to Mar 1 in
// non-leap years (Go date arithmetic; pinned by tests).
func (e *Event) NextOccurrence(today time.Time) (time.Time, error) {
	d, err := e.Date()
	if err != nil {
		return time.Time{}, err
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	candidate := time.Date(todayDate.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(todayDate) {
		candidate = time.Date(todayDate.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate, nil
}

// DaysUntil is the whole-day distance from today to the next occurrence.
// Non-negative by construction. Both dates are normalized to UTC midnights so
// DST transitions in the owner's zone cannot skew the count.
func (e *Event) DaysUntil(today time.Time) (int, error) {
	next, err := e.NextOccurrence(today)
	if err != nil {
		return 0, err
	}
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(next.Sub(todayDate).Hours() / 24), nil
}

// ============================================================================
// DTOs
// ============================================================================

// ScheduledEvent joins an event with its owner's timezone preference for the
// notification scan. Timezone is empty when the chat never set one.
type ScheduledEvent struct {
	Event
	Timezone string `db:"timezone" json:"timezone"`
}

// AddEventRequest carries the answers of the add-date conversation.
type AddEventRequest struct {
	ChatID     kernel.ChatID
	Name       string
	EventDate  string
	NotifyTime string
}

// Journey is the elapsed-time breakdown since the anniversary event. Years
// and months are display approximations (365-day years, 30-day months), not
// calendar arithmetic; the approximation is part of the contract.
type Journey struct {
	Years     int
	Months    int
	Days      int
	TotalDays int
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("EVENT")

var (
	CodeEventNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Event not found")
	CodeInvalidDate   = ErrRegistry.Register("INVALID_DATE", errx.TypeValidation, http.StatusBadRequest, "Event date must be DD-MM-YYYY")
	CodeInvalidTime   = ErrRegistry.Register("INVALID_TIME", errx.TypeValidation, http.StatusBadRequest, "Notify time must be HH:MM")
	CodeNoAnniversary = ErrRegistry.Register("NO_ANNIVERSARY", errx.TypeBusiness, http.StatusNotFound, "No anniversary event configured")
)

func ErrEventNotFound() *errx.Error {
	return ErrRegistry.New(CodeEventNotFound)
}

func ErrInvalidDate() *errx.Error {
	return ErrRegistry.New(CodeInvalidDate)
}

func ErrInvalidTime() *errx.Error {
	return ErrRegistry.New(CodeInvalidTime)
}

func ErrNoAnniversary() *errx.Error {
	return ErrRegistry.New(CodeNoAnniversary)
}
