package postgres

import (
	"context"
	"errors"
	"time"

	"middlebeat/internal/database"
	"middlebeat/internal/domain/message"

	"github.com/jackc/pgx/v5"
)

type MessageRepository struct {
	db database.DB
}

var _ message.Repository = (*MessageRepository)(nil)

func NewMessageRepository(db database.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// conversationSelect joins each conversation with its newest message.
const conversationSelect = `SELECT c.id, c.participants, c.updated_at,
	m.id, m.sender_id, m.receiver_id, m.content, m.sent_at, m.is_read
FROM conversations c
LEFT JOIN LATERAL (
	SELECT id, sender_id, receiver_id, content, sent_at, is_read
	FROM messages
	WHERE conversation_id = c.id
	ORDER BY seq DESC
	LIMIT 1
) m ON true`

func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]message.Conversation, error) {
	rows, err := r.db.Query(ctx, conversationSelect+` WHERE $1 = ANY(c.participants) ORDER BY c.seq ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]message.Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MessageRepository) GetConversation(ctx context.Context, id string) (message.Conversation, error) {
	c, err := scanConversation(r.db.QueryRow(ctx, conversationSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return message.Conversation{}, message.ErrConversationNotFound
	}
	return c, err
}

func (r *MessageRepository) Messages(ctx context.Context, conversationID string) ([]message.Message, error) {
	if err := r.ensureConversation(ctx, r.db, conversationID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, conversation_id, sender_id, receiver_id, content, sent_at, is_read
		FROM messages WHERE conversation_id = $1 ORDER BY seq ASC`,
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp, &m.IsRead); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MessageRepository) Append(ctx context.Context, m message.Message) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		n, err := tx.Exec(ctx, `UPDATE conversations SET updated_at = $2 WHERE id = $1`, m.ConversationID, m.Timestamp)
		if err != nil {
			return err
		}
		if n == 0 {
			return message.ErrConversationNotFound
		}
		return InsertMessage(ctx, tx, m)
	})
}

func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	if err := r.ensureConversation(ctx, r.db, conversationID); err != nil {
		return err
	}
	_, err := r.db.Exec(
		ctx,
		`UPDATE messages SET is_read = true WHERE conversation_id = $1 AND receiver_id = $2 AND NOT is_read`,
		conversationID,
		readerID,
	)
	return err
}

func (r *MessageRepository) UnreadCount(ctx context.Context, conversationID, readerID string) (int, error) {
	var n int
	err := r.db.QueryRow(
		ctx,
		`SELECT count(*) FROM messages WHERE conversation_id = $1 AND receiver_id = $2 AND NOT is_read`,
		conversationID,
		readerID,
	).Scan(&n)
	return n, err
}

func (r *MessageRepository) ensureConversation(ctx context.Context, q database.Querier, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM conversations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return message.ErrConversationNotFound
	}
	return nil
}

func InsertConversation(ctx context.Context, q database.Querier, c message.Conversation) error {
	_, err := q.Exec(
		ctx,
		`INSERT INTO conversations (id, participants, updated_at) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
		c.ID,
		nonNil(c.Participants),
		c.UpdatedAt,
	)
	return err
}

func InsertMessage(ctx context.Context, q database.Querier, m message.Message) error {
	_, err := q.Exec(
		ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content, sent_at, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
		m.ID,
		m.ConversationID,
		m.SenderID,
		m.ReceiverID,
		m.Content,
		m.Timestamp,
		m.IsRead,
	)
	return err
}

func scanConversation(row database.Row) (message.Conversation, error) {
	var c message.Conversation
	var (
		id, sender, receiver, content *string
		sentAt                        *time.Time
		isRead                        *bool
	)
	if err := row.Scan(&c.ID, &c.Participants, &c.UpdatedAt, &id, &sender, &receiver, &content, &sentAt, &isRead); err != nil {
		return message.Conversation{}, err
	}
	if id != nil {
		c.LastMessage = &message.Message{
			ID:             *id,
			ConversationID: c.ID,
			SenderID:       deref(sender),
			ReceiverID:     deref(receiver),
			Content:        deref(content),
			IsRead:         isRead != nil && *isRead,
		}
		if sentAt != nil {
			c.LastMessage.Timestamp = *sentAt
		}
	}
	return c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
