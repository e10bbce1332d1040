package eventinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/event"
	"github.com/valentinrios/memora/pkg/kernel"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          BIGSERIAL PRIMARY KEY,
	chat_id     BIGINT NOT NULL,
	name        TEXT NOT NULL,
	event_date  TEXT NOT NULL,
	notify_time TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_chat_id ON events (chat_id);
`

// PostgresEventRepository is the sqlx implementation of EventRepository.
type PostgresEventRepository struct {
	db *sqlx.DB
}

// NewPostgresEventRepository creates the events repository.
func NewPostgresEventRepository(db *sqlx.DB) event.EventRepository {
	return &PostgresEventRepository{
		db: db,
	}
}

// EnsureSchema creates the events table when missing.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errx.Wrap(err, "failed to ensure events schema", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresEventRepository) FindByChat(ctx context.Context, chatID kernel.ChatID) ([]*event.Event, error) {
	query := `
		SELECT id, chat_id, name, event_date, notify_time
		FROM events
		WHERE chat_id = $1
		ORDER BY id ASC`

	var events []event.Event
	err := r.db.SelectContext(ctx, &events, query, chatID.Int64())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list events", errx.TypeInternal).
			WithDetail("chat_id", chatID.String())
	}

	result := make([]*event.Event, len(events))
	for i := range events {
		result[i] = &events[i]
	}

	return result, nil
}

func (r *PostgresEventRepository) FindAllWithTimezone(ctx context.Context) ([]*event.ScheduledEvent, error) {
	query := `
		SELECT e.id, e.chat_id, e.name, e.event_date, e.notify_time,
		       COALESCE(s.timezone, '') AS timezone
		FROM events e
		LEFT JOIN chat_settings s ON s.chat_id = e.chat_id
		ORDER BY e.id ASC`

	var events []event.ScheduledEvent
	err := r.db.SelectContext(ctx, &events, query)
	if err != nil {
		return nil, errx.Wrap(err, "failed to scan events with timezones", errx.TypeInternal)
	}

	result := make([]*event.ScheduledEvent, len(events))
	for i := range events {
		result[i] = &events[i]
	}

	return result, nil
}

func (r *PostgresEventRepository) FindAnniversary(ctx context.Context, chatID kernel.ChatID) (*event.Event, error) {
	query := `
		SELECT id, chat_id, name, event_date, notify_time
		FROM events
		WHERE chat_id = $1 AND name LIKE $2
		ORDER BY id ASC
		LIMIT 1`

	var e event.Event
	err := r.db.GetContext(ctx, &e, query, chatID.Int64(), event.AnniversaryPrefix+"%")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, event.ErrNoAnniversary().WithDetail("chat_id", chatID.String())
		}
		return nil, errx.Wrap(err, "failed to find anniversary event", errx.TypeInternal).
			WithDetail("chat_id", chatID.String())
	}

	return &e, nil
}

func (r *PostgresEventRepository) Save(ctx context.Context, e *event.Event) error {
	query := `
		INSERT INTO events (chat_id, name, event_date, notify_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, e.ChatID.Int64(), e.Name, e.EventDate, e.NotifyTime).Scan(&e.ID)
	if err != nil {
		return errx.Wrap(err, "failed to save event", errx.TypeInternal).
			WithDetail("chat_id", e.ChatID.String())
	}

	return nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error) {
	query := `DELETE FROM events WHERE id = $1 AND chat_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, chatID.Int64())
	if err != nil {
		return false, errx.Wrap(err, "failed to delete event", errx.TypeInternal).
			WithDetail("event_id", id).
			WithDetail("chat_id", chatID.String())
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, errx.Wrap(err, "failed to read delete result", errx.TypeInternal)
	}

	return rows > 0, nil
}
