package notesrv

import (
	"context"
	"strings"

	"github.com/valentinrios/memora/pkg/kernel"
	"github.com/valentinrios/memora/pkg/note"
)

// NoteService provides the business operations for notes.
type NoteService struct {
	noteRepo note.NoteRepository
}

// NewNoteService creates a new note service.
func NewNoteService(noteRepo note.NoteRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
	}
}

// AddTextNote stores a plain text note.
func (s *NoteService) AddTextNote(ctx context.Context, chatID kernel.ChatID, title, content string) (*note.Note, error) {
	return s.add(ctx, &note.Note{
		ChatID:  chatID,
		Title:   title,
		Content: content,
	})
}

// AddPhotoNote stores a photo note; content carries the optional caption.
func (s *NoteService) AddPhotoNote(ctx context.Context, chatID kernel.ChatID, title, caption, photoID string) (*note.Note, error) {
	return s.add(ctx, &note.Note{
		ChatID:  chatID,
		Title:   title,
		Content: caption,
		PhotoID: photoID,
	})
}

func (s *NoteService) add(ctx context.Context, n *note.Note) (*note.Note, error) {
	if strings.TrimSpace(n.Title) == "" {
		return nil, note.ErrEmptyTitle()
	}
	if err := s.noteRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes returns all notes of one chat, text notes first, preserving the
// stored order inside each group. Photo notes are rendered as separate
// messages by the front end, so the split happens here once.
func (s *NoteService) ListNotes(ctx context.Context, chatID kernel.ChatID) (text, photo []*note.Note, err error) {
	notes, err := s.noteRepo.FindByChat(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}

	for _, n := range notes {
		if n.HasPhoto() {
			photo = append(photo, n)
		} else {
			text = append(text, n)
		}
	}

	return text, photo, nil
}

// DeleteNote removes a note scoped to its owner.
func (s *NoteService) DeleteNote(ctx context.Context, id int64, chatID kernel.ChatID) (bool, error) {
	return s.noteRepo.Delete(ctx, id, chatID)
}
