package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/valentinrios/memora/pkg/kernel"
)

func TestInMemoryStorePutGetClear(t *testing.T) {
	store := NewInMemoryConversationStore(time.Minute)
	chat := kernel.NewChatID(7)
	ctx := context.Background()

	state := newState(flowAddEvent, stepEventName)
	state.Answer(ansEventName, "Birthday")

	if err := store.Put(ctx, chat, state); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, chat)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Flow != flowAddEvent || got.Step != stepEventName {
		t.Fatalf("Get() = %+v, want the stored state", got)
	}
	if got.Answers[ansEventName] != "Birthday" {
		t.Errorf("answers = %v, want the recorded name", got.Answers)
	}

	if err := store.Clear(ctx, chat); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err = store.Get(ctx, chat)
	if err != nil {
		t.Fatalf("Get() after Clear error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after Clear = %+v, want nil", got)
	}
}

func TestInMemoryStoreExpiry(t *testing.T) {
	store := NewInMemoryConversationStore(-time.Second) // already expired
	chat := kernel.NewChatID(7)
	ctx := context.Background()

	if err := store.Put(ctx, chat, newState(flowAddNote, stepNoteTitle)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, chat)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for an expired entry", got)
	}
}

func TestInMemoryStoreIsolatesChats(t *testing.T) {
	store := NewInMemoryConversationStore(time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, kernel.NewChatID(1), newState(flowDelete, stepDeleteChoice)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, kernel.NewChatID(2))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() for another chat = %+v, want nil", got)
	}
}
