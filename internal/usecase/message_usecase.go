package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"middlebeat/internal/domain/message"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxMessageLength = 2000

type MessageNotifier interface {
	MessageReceived(m message.Message)
}

type ConversationSummary struct {
	message.Conversation
	Participant *user.Profile `json:"participant,omitempty"`
	UnreadCount int           `json:"unread_count"`
}

type MessageUsecase interface {
	Conversations(ctx context.Context, userID, q string) ([]ConversationSummary, error)
	Messages(ctx context.Context, conversationID, userID string) ([]message.Message, error)
	Send(ctx context.Context, conversationID, senderID, content string) (message.Message, error)
}

type Messages struct {
	messages message.Repository
	profiles user.ProfileRepository
	notifier MessageNotifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewMessageUsecase(messages message.Repository, profiles user.ProfileRepository, notifier MessageNotifier, logger *zap.Logger) *Messages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Messages{messages: messages, profiles: profiles, notifier: notifier, now: time.Now, logger: logger}
}

// Conversations lists userID's conversations whose other participant's name
// contains q, most recently active first.
func (u *Messages) Conversations(ctx context.Context, userID, q string) ([]ConversationSummary, error) {
	convs, err := u.messages.ListForUser(ctx, userID)
	if err != nil {
		u.logger.Error("messages: list conversations failed", zap.Error(err))
		return nil, ErrInternal
	}
	profiles, err := u.profiles.List(ctx)
	if err != nil {
		u.logger.Error("messages: list profiles failed", zap.Error(err))
		return nil, ErrInternal
	}
	byUser := make(map[string]user.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}

	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		s := ConversationSummary{Conversation: c}
		if p, ok := byUser[c.Other(userID)]; ok {
			s.Participant = &p
		}
		if q != "" && (s.Participant == nil || !strings.Contains(strings.ToLower(s.Participant.FullName), q)) {
			continue
		}
		n, err := u.messages.UnreadCount(ctx, c.ID, userID)
		if err != nil {
			u.logger.Error("messages: unread count failed", zap.String("conversation_id", c.ID), zap.Error(err))
			return nil, ErrInternal
		}
		s.UnreadCount = n
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Messages returns the conversation oldest first and marks what userID
// received as read.
func (u *Messages) Messages(ctx context.Context, conversationID, userID string) ([]message.Message, error) {
	if _, err := u.participantOf(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if err := u.messages.MarkRead(ctx, conversationID, userID); err != nil {
		u.logger.Error("messages: mark read failed", zap.String("conversation_id", conversationID), zap.Error(err))
		return nil, ErrInternal
	}
	msgs, err := u.messages.Messages(ctx, conversationID)
	if err != nil {
		return nil, ErrInternal
	}
	return msgs, nil
}

func (u *Messages) Send(ctx context.Context, conversationID, senderID, content string) (message.Message, error) {
	content = sanitize.Text(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		return message.Message{}, ErrInvalidInput
	}

	c, err := u.participantOf(ctx, conversationID, senderID)
	if err != nil {
		return message.Message{}, err
	}
	receiver := c.Other(senderID)
	if receiver == "" {
		return message.Message{}, ErrInvalidInput
	}

	m := message.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiver,
		Content:        content,
		Timestamp:      u.now().UTC(),
	}
	if err := u.messages.Append(ctx, m); err != nil {
		u.logger.Error("messages: append failed", zap.String("conversation_id", conversationID), zap.Error(err))
		return message.Message{}, ErrInternal
	}
	if u.notifier != nil {
		u.notifier.MessageReceived(m)
	}
	return m, nil
}

func (u *Messages) participantOf(ctx context.Context, conversationID, userID string) (message.Conversation, error) {
	c, err := u.messages.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, message.ErrConversationNotFound) {
			return message.Conversation{}, ErrNotFound
		}
		return message.Conversation{}, ErrInternal
	}
	if !c.HasParticipant(userID) {
		return message.Conversation{}, ErrForbidden
	}
	return c, nil
}
