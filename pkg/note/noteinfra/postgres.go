package noteinfra

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/note"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id       BIGSERIAL PRIMARY KEY,
	chat_id  BIGINT NOT NULL,
	title    TEXT NOT NULL,
	content  TEXT NOT NULL DEFAULT '',
	photo_id TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_notes_chat_id ON notes (chat_id);
`

// PostgresNoteRepository is the sqlx implementation of NoteRepository.
type PostgresNoteRepository struct {
	db *sqlx.DB
}

// NewPostgresNoteRepository creates the notes repository.
func NewPostgresNoteRepository(db *sqlx.DB) note.NoteRepository {
	return &PostgresNoteRepository{
		db: db,
	}
}

// EnsureSchema creates the notes table when missing.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errx.Wrap(err, "failed to ensure notes schema", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresNoteRepository) FindByChat(ctx context.Context, chatID kernel.ChatID) ([]*note.Note, error) {
	query := `
		SELECT id, chat_id, title, content, photo_id
		FROM notes
		WHERE chat_id = $1
		ORDER BY id ASC`

	var notes []note.Note
	err := r.db.SelectContext(ctx, &notes, query, chatID.Int64())
	if err != nil {
		return nil, errx.Wrap(err, "failed to list notes", errx.TypeInternal).
			WithDetail("chat_id", chatID.String())
	}

	result := make([]*note.Note, len(notes))
	for i := range notes {
		result[i] = &notes[i]
	}

	return result, nil
}

func (r *PostgresNoteRepository) Save(ctx context.Context, n *note.Note) error {
	query := `
		INSERT INTO notes (chat_id, title, content, photo_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, n.ChatID.Int64(), n.Title, n.Content, n.PhotoID).Scan(&n.ID)
	if err != nil {
		return errx.Wrap(err, "failed to save note", errx.TypeInternal).
			WithDetail("chat_id", n.ChatID.String())
	}

	return nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1 AND chat_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, chatID.Int64())
	if err != nil {
		return false, errx.Wrap(err, "failed to delete note", errx.TypeInternal).
			WithDetail("note_id", id).
			WithDetail("chat_id", chatID.String())
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, errx.Wrap(err, "failed to read delete result", errx.TypeInternal)
	}

	return rows > 0, nil
}
