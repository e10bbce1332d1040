package note

import (
	"context"

	"github.com/valentinrios/memora/pkg/kernel"
)

// NoteRepository is the persistence contract for notes.
type NoteRepository interface {
	FindByChat(ctx context.Context, chatID kernel.ChatID) ([]*Note, error)
	Save(ctx context.Context, n *Note) error
	// Delete removes a note only when both id and owner match.
	Delete(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error)
}
