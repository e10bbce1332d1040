package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/valentinrios/memora/pkg/kernel"
)

// ConversationState is the in-flight position of one chat inside a form
// filler flow: which flow, which step, and the answers collected so far.
type ConversationState struct {
	Flow    string            `json:"flow"`
	Step    string            `json:"step"`
	Answers map[string]string `json:"answers"`
}

// Answer records one collected value.
func (s *ConversationState) Answer(key, value string) {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[key] = value
}

// ConversationStore persists conversation state between inbound messages.
// Entries expire after a TTL so abandoned flows do not pin state forever.
type ConversationStore interface {
	Get(ctx context.Context, chatID kernel.ChatID) (*ConversationState, error)
	Put(ctx context.Context, chatID kernel.ChatID, state *ConversationState) error
	Clear(ctx context.Context, chatID kernel.ChatID) error
}

// ============================================================================
// In-memory store
// ============================================================================

// InMemoryConversationStore keeps conversation state in process memory. Fine
// for a single-worker deployment; state is lost on restart.
type InMemoryConversationStore struct {
	states map[kernel.ChatID]*memoryEntry
	mu     sync.RWMutex
	ttl    time.Duration
}

type memoryEntry struct {
	state     *ConversationState
	expiresAt time.Time
}

// NewInMemoryConversationStore creates an in-memory store.
func NewInMemoryConversationStore(ttl time.Duration) *InMemoryConversationStore {
	return &InMemoryConversationStore{
		states: make(map[kernel.ChatID]*memoryEntry),
		ttl:    ttl,
	}
}

func (s *InMemoryConversationStore) Get(ctx context.Context, chatID kernel.ChatID) (*ConversationState, error) {
	s.mu.RLock()
	entry, exists := s.states[chatID]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.states, chatID)
		s.mu.Unlock()
		return nil, nil
	}

	return entry.state, nil
}

func (s *InMemoryConversationStore) Put(ctx context.Context, chatID kernel.ChatID, state *ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[chatID] = &memoryEntry{
		state:     state,
		expiresAt: time.Now().Add(s.ttl),
	}

	return nil
}

func (s *InMemoryConversationStore) Clear(ctx context.Context, chatID kernel.ChatID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, chatID)
	return nil
}
