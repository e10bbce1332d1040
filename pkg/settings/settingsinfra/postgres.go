package settingsinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/settings"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_settings (
	chat_id  BIGINT PRIMARY KEY,
	timezone TEXT NOT NULL
);
`

// PostgresSettingsRepository is the sqlx implementation of SettingsRepository.
type PostgresSettingsRepository struct {
	db *sqlx.DB
}

// NewPostgresSettingsRepository creates the settings repository.
func NewPostgresSettingsRepository(db *sqlx.DB) settings.SettingsRepository {
	return &PostgresSettingsRepository{
		db: db,
	}
}

// EnsureSchema creates the chat_settings table when missing.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errx.Wrap(err, "failed to ensure settings schema", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresSettingsRepository) Get(ctx context.Context, chatID kernel.ChatID) (*settings.ChatSettings, error) {
	query := `SELECT chat_id, timezone FROM chat_settings WHERE chat_id = $1`

	var s settings.ChatSettings
	err := r.db.GetContext(ctx, &s, query, chatID.Int64())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to get chat settings", errx.TypeInternal).
			WithDetail("chat_id", chatID.String())
	}

	return &s, nil
}

func (r *PostgresSettingsRepository) Upsert(ctx context.Context, chatID kernel.ChatID, zone string) error {
	query := `
		INSERT INTO chat_settings (chat_id, timezone)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET timezone = EXCLUDED.timezone`

	if _, err := r.db.ExecContext(ctx, query, chatID.Int64(), zone); err != nil {
		return errx.Wrap(err, "failed to upsert chat settings", errx.TypeInternal).
			WithDetail("chat_id", chatID.String())
	}

	return nil
}
