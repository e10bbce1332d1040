package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/valentinrios/memora/pkg/event"
	"github.com/valentinrios/memora/pkg/kernel"
)

// mockEventRepo serves a fixed snapshot to the engine.
type mockEventRepo struct {
	scheduled []*event.ScheduledEvent
	err       error
}

func (m *mockEventRepo) FindAllWithTimezone(ctx context.Context) ([]*event.ScheduledEvent, error) {
	return m.scheduled, m.err
}

func (m *mockEventRepo) FindByChat(ctx context.Context, chatID kernel.ChatID) ([]*event.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) FindAnniversary(ctx context.Context, chatID kernel.ChatID) (*event.Event, error) {
	return nil, event.ErrNoAnniversary()
}

func (m *mockEventRepo) Save(ctx context.Context, e *event.Event) error {
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error) {
	return false, nil
}

// mockNotifier records deliveries and can fail selected chats.
type mockNotifier struct {
	sent    []sentMessage
	failFor map[kernel.ChatID]error
}

type sentMessage struct {
	chatID kernel.ChatID
	html   string
}

func (m *mockNotifier) Send(ctx context.Context, chatID kernel.ChatID, html string) error {
	if err, ok := m.failFor[chatID]; ok {
		return err
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, html: html})
	return nil
}

// fixedClock pins "now" to one instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func scheduled(id int64, chat int64, name, date, notify, tz string) *event.ScheduledEvent {
	return &event.ScheduledEvent{
		Event: event.Event{
			ID:         id,
			ChatID:     kernel.NewChatID(chat),
			Name:       name,
			EventDate:  date,
			NotifyTime: notify,
		},
		Timezone: tz,
	}
}

func runTick(t *testing.T, repo *mockEventRepo, now time.Time) *mockNotifier {
	t.Helper()
	notifier := &mockNotifier{}
	engine := NewEngine(repo, notifier, fixedClock{now: now})
	engine.Tick(context.Background())
	return notifier
}

func TestTickTwoWeeksOut(t *testing.T) {
	// June 1st vs June 15th: 14 days, a multiple of 7, so the weeks-out
	// message fires with N=2.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Birthday", "15-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 30, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].html, "2 week(s)") {
		t.Errorf("message = %q, want weeks-out with N=2", notifier.sent[0].html)
	}
}

func TestTickTodayMessageOnly(t *testing.T) {
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Anniversary", "01-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0].html
	if !strings.Contains(msg, "Today is the day") {
		t.Errorf("message = %q, want the today variant", msg)
	}
	if strings.Contains(msg, "TOMORROW") || strings.Contains(msg, "week(s)") {
		t.Errorf("message = %q, other variants must not fire at zero days", msg)
	}
}

func TestTickOneMonthOut(t *testing.T) {
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Wedding", "01-07-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].html, "1 month") {
		t.Errorf("message = %q, want the month variant", notifier.sent[0].html)
	}
}

func TestTickTimeGateExactMinute(t *testing.T) {
	// Two events one minute apart; only the one matching the current local
	// minute fires.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "First", "01-06-2020", "09:00", ""),
		scheduled(2, 100, "Second", "01-06-2020", "09:01", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 59, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].html, "First") {
		t.Errorf("message = %q, want the 09:00 event only", notifier.sent[0].html)
	}
}

func TestTickUnknownZoneEqualsNoZone(t *testing.T) {
	// An unrecognized zone behaves exactly like an absent preference: both
	// evaluate in UTC and both fire.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "NoZone", "01-06-2020", "09:00", ""),
		scheduled(2, 200, "BadZone", "01-06-2020", "09:00", "Mars/Olympus"),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 2 {
		t.Fatalf("sent = %d messages, want 2 (UTC fallback for both)", len(notifier.sent))
	}
}

func TestTickUsesOwnerLocalDate(t *testing.T) {
	// 02:00 UTC on June 2nd is still 21:00 June 1st in Lima. The event must
	// be evaluated against the local calendar: June 15th is 14 days away.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Fiesta", "15-06-2020", "21:00", "America/Lima"),
	}}
	now := time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].html, "2 week(s)") {
		t.Errorf("message = %q, want weeks-out computed on the local date", notifier.sent[0].html)
	}
}

func TestTickMalformedDateSkipped(t *testing.T) {
	// The broken record is inert; the rest of the batch still evaluates.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Broken", "not-a-date", "09:00", ""),
		scheduled(2, 200, "Fine", "01-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if !strings.Contains(notifier.sent[0].html, "Fine") {
		t.Errorf("message = %q, want the valid event", notifier.sent[0].html)
	}
}

func TestTickDeliveryFailureIsolated(t *testing.T) {
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Unreachable", "01-06-2020", "09:00", ""),
		scheduled(2, 200, "Reachable", "01-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := &mockNotifier{failFor: map[kernel.ChatID]error{
		kernel.NewChatID(100): errors.New("chat blocked the bot"),
	}}
	engine := NewEngine(repo, notifier, fixedClock{now: now})
	engine.Tick(context.Background())

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	if notifier.sent[0].chatID != kernel.NewChatID(200) {
		t.Errorf("delivered to chat %s, want 200", notifier.sent[0].chatID)
	}
}

func TestTickSnapshotErrorDoesNotPanic(t *testing.T) {
	repo := &mockEventRepo{err: errors.New("db unavailable")}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %d messages, want 0 on snapshot failure", len(notifier.sent))
	}
}

func TestTickOffThresholdSendsNothing(t *testing.T) {
	// 10 days out: not 30, not a weekly multiple, not 1 or 0.
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "Quiet", "11-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 0 {
		t.Fatalf("sent = %d messages, want 0", len(notifier.sent))
	}
}

func TestTickEscapesEventName(t *testing.T) {
	repo := &mockEventRepo{scheduled: []*event.ScheduledEvent{
		scheduled(1, 100, "<b>sneaky</b> & co", "01-06-2020", "09:00", ""),
	}}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	notifier := runTick(t, repo, now)

	if len(notifier.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0].html
	if strings.Contains(msg, "<b>sneaky</b>") {
		t.Errorf("message = %q, raw markup leaked through", msg)
	}
	if !strings.Contains(msg, "&lt;b&gt;sneaky&lt;/b&gt; &amp; co") {
		t.Errorf("message = %q, want the escaped name", msg)
	}
}
