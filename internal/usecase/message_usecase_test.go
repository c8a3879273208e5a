package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"middlebeat/internal/domain/message"
	"middlebeat/internal/repository/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []message.Message
}

func (r *recordingNotifier) MessageReceived(m message.Message) {
	r.mu.Lock()
	r.sent = append(r.sent, m)
	r.mu.Unlock()
}

func TestMessages_ConversationsOrderedWithUnread(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewMessageUsecase(repo.Messages(), repo.Profiles(), nil, nil)

	got, err := uc.Conversations(context.Background(), "4", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(got))
	}
	if got[0].ID != "1" || got[0].UnreadCount != 1 {
		t.Fatalf("expected conversation 1 first with 1 unread, got %s/%d", got[0].ID, got[0].UnreadCount)
	}
	if got[0].Participant == nil || got[0].Participant.FullName != "Alex Martinez" {
		t.Fatalf("unexpected participant %+v", got[0].Participant)
	}
	if got[1].ID != "2" || got[2].ID != "3" {
		t.Fatalf("unexpected order %s, %s", got[1].ID, got[2].ID)
	}
}

func TestMessages_ConversationsFilterByName(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewMessageUsecase(repo.Messages(), repo.Profiles(), nil, nil)

	got, err := uc.Conversations(context.Background(), "4", "MAYA")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only the conversation with Maya, got %+v", got)
	}
}

func TestMessages_ReadingMarksRead(t *testing.T) {
	repo := memory.NewSeededStore()
	uc := NewMessageUsecase(repo.Messages(), repo.Profiles(), nil, nil)
	ctx := context.Background()

	msgs, err := uc.Messages(ctx, "1", "4")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	n, _ := repo.Messages().UnreadCount(ctx, "1", "4")
	if n != 0 {
		t.Fatalf("expected no unread messages, got %d", n)
	}

	if _, err := uc.Messages(ctx, "1", "7"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Messages(ctx, "42", "4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessages_Send(t *testing.T) {
	repo := memory.NewSeededStore()
	n := &recordingNotifier{}
	uc := NewMessageUsecase(repo.Messages(), repo.Profiles(), n, nil)
	ctx := context.Background()

	if _, err := uc.Send(ctx, "3", "4", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank message: expected ErrInvalidInput, got %v", err)
	}

	m, err := uc.Send(ctx, "3", "4", "  Let's jam on Friday  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.ReceiverID != "7" || m.Content != "Let's jam on Friday" || m.IsRead {
		t.Fatalf("unexpected message %+v", m)
	}
	if len(n.sent) != 1 || n.sent[0].ID != m.ID {
		t.Fatalf("expected receiver notified")
	}

	convs, _ := uc.Conversations(ctx, "4", "")
	if convs[0].ID != "3" {
		t.Fatalf("expected conversation 3 to move to the top, got %s", convs[0].ID)
	}
	if convs[0].LastMessage == nil || convs[0].LastMessage.ID != m.ID {
		t.Fatalf("expected last message updated")
	}
}
