package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"middlebeat/internal/domain/message"
	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"
)

func TestUserRepository_EmailIgnoresCase(t *testing.T) {
	s := NewSeededStore()
	ctx := context.Background()

	u, err := s.Users().GetByEmail(ctx, "ALEX.Music@Example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID != "1" {
		t.Fatalf("unexpected user %s", u.ID)
	}

	if _, err := s.Users().GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_CreateAccountRejectsDuplicates(t *testing.T) {
	s := NewSeededStore()
	ctx := context.Background()

	err := s.Users().CreateAccount(ctx, user.User{ID: "x", Email: "Maya.Vocalist@example.com"}, user.Profile{ID: "x", UserID: "x"})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	n, _ := s.Users().Count(ctx)
	if n != 8 {
		t.Fatalf("expected 8 users, got %d", n)
	}
	ps, _ := s.Profiles().List(ctx)
	if len(ps) != 8 {
		t.Fatalf("expected 8 profiles, got %d", len(ps))
	}
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			if err := s.Users().CreateAccount(ctx, user.User{ID: id, Email: "same@example.com"}, user.Profile{ID: id, UserID: id}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one account, got %d", created)
	}
}

func TestProfileRepository_UpdateReplacesByID(t *testing.T) {
	s := NewSeededStore()
	ctx := context.Background()

	p, err := s.Profiles().GetByUserID(ctx, "4")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p.Bio = "new bio"
	if err := s.Profiles().Update(ctx, p); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := s.Profiles().GetByUserID(ctx, "4")
	if got.Bio != "new bio" {
		t.Fatalf("update not applied")
	}

	if err := s.Profiles().Update(ctx, user.Profile{ID: "missing"}); !errors.Is(err, user.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProjectRepository_AddApplicantIsIdempotent(t *testing.T) {
	s := NewSeededStore()
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	added, err := s.Projects().AddApplicant(ctx, "3", "8")
	if err != nil || !added {
		t.Fatalf("expected applicant added, got %v %v", added, err)
	}
	now = now.Add(time.Hour)
	added, err = s.Projects().AddApplicant(ctx, "3", "8")
	if err != nil || added {
		t.Fatalf("expected no-op, got %v %v", added, err)
	}
	p, _ := s.Projects().GetByID(ctx, "3")
	if len(p.Applicants) != 1 {
		t.Fatalf("expected 1 applicant, got %v", p.Applicants)
	}
	if !p.UpdatedAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("expected updatedAt from the first apply only, got %s", p.UpdatedAt)
	}

	if err := s.Projects().UpdateStatus(ctx, "3", project.StatusInProgress); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, _ = s.Projects().GetByID(ctx, "3")
	if !p.UpdatedAt.Equal(now) {
		t.Fatalf("expected status change to refresh updatedAt, got %s", p.UpdatedAt)
	}

	if err := s.Projects().UpdateStatus(ctx, "nope", project.StatusCancelled); !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessageRepository_AppendAndRead(t *testing.T) {
	s := NewSeededStore()
	ctx := context.Background()

	n, _ := s.Messages().UnreadCount(ctx, "1", "4")
	if n != 1 {
		t.Fatalf("expected 1 unread, got %d", n)
	}

	m := message.Message{ID: "9", ConversationID: "1", SenderID: "4", ReceiverID: "1", Content: "on it", Timestamp: time.Now().UTC()}
	if err := s.Messages().Append(ctx, m); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, _ := s.Messages().GetConversation(ctx, "1")
	if c.LastMessage == nil || c.LastMessage.ID != "9" {
		t.Fatalf("last message not updated")
	}

	if err := s.Messages().MarkRead(ctx, "1", "4"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	n, _ = s.Messages().UnreadCount(ctx, "1", "4")
	if n != 0 {
		t.Fatalf("expected 0 unread, got %d", n)
	}

	convs, _ := s.Messages().ListForUser(ctx, "8")
	if len(convs) != 1 || convs[0].ID != "2" {
		t.Fatalf("unexpected conversations for user 8: %+v", convs)
	}
}
