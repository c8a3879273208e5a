package memory

import (
	"context"

	"middlebeat/internal/domain/message"
)

type MessageRepository struct {
	s *Store
}

var _ message.Repository = (*MessageRepository)(nil)

func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]message.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]message.Conversation, 0)
	for _, c := range r.s.convs {
		if c.HasParticipant(userID) {
			out = append(out, cloneConversation(c))
		}
	}
	return out, nil
}

func (r *MessageRepository) GetConversation(ctx context.Context, id string) (message.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.conversationIndex(id)
	if i < 0 {
		return message.Conversation{}, message.ErrConversationNotFound
	}
	return cloneConversation(r.s.convs[i]), nil
}

func (r *MessageRepository) Messages(ctx context.Context, conversationID string) ([]message.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.conversationIndex(conversationID) < 0 {
		return nil, message.ErrConversationNotFound
	}
	out := make([]message.Message, 0)
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MessageRepository) Append(ctx context.Context, m message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.conversationIndex(m.ConversationID)
	if i < 0 {
		return message.ErrConversationNotFound
	}
	r.s.messages = append(r.s.messages, m)
	last := m
	r.s.convs[i].LastMessage = &last
	r.s.convs[i].UpdatedAt = m.Timestamp
	return nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.conversationIndex(conversationID)
	if i < 0 {
		return message.ErrConversationNotFound
	}
	for j := range r.s.messages {
		m := &r.s.messages[j]
		if m.ConversationID == conversationID && m.ReceiverID == readerID {
			m.IsRead = true
		}
	}
	if last := r.s.convs[i].LastMessage; last != nil && last.ReceiverID == readerID {
		last.IsRead = true
	}
	return nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, conversationID, readerID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID && m.ReceiverID == readerID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *Store) conversationIndex(id string) int {
	for i := range s.convs {
		if s.convs[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneConversation(c message.Conversation) message.Conversation {
	c.Participants = append([]string(nil), c.Participants...)
	if c.LastMessage != nil {
		m := *c.LastMessage
		c.LastMessage = &m
	}
	return c
}
