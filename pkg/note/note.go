package note

import (
	"net/http"

	"github.com/valentinrios/memora/pkg/errx"
	"github.com/valentinrios/memora/pkg/kernel"
)

// ============================================================================
// Note Entity
// ============================================================================

// Note is a freeform memory: either plain text or a photo (kept as the
// delivery channel's file id, never as a blob) with an optional caption.
type Note struct {
	ID      int64         `db:"id" json:"id"`
	ChatID  kernel.ChatID `db:"chat_id" json:"chat_id"`
	Title   string        `db:"title" json:"title"`
	Content string        `db:"content" json:"content"`
	PhotoID string        `db:"photo_id" json:"photo_id"`
}

// HasPhoto reports whether this note renders as a photo message.
func (n *Note) HasPhoto() bool {
	return n.PhotoID != ""
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("NOTE")

var (
	CodeNoteNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Note not found")
	CodeEmptyTitle   = ErrRegistry.Register("EMPTY_TITLE", errx.TypeValidation, http.StatusBadRequest, "Note title cannot be empty")
)

func ErrNoteNotFound() *errx.Error {
	return ErrRegistry.New(CodeNoteNotFound)
}

func ErrEmptyTitle() *errx.Error {
	return ErrRegistry.New(CodeEmptyTitle)
}
