package seeder

import (
	"context"

	"middlebeat/internal/database"
	pgrepo "middlebeat/internal/repository/postgres"
	"middlebeat/internal/seed"
)

type ConversationsSeeder struct{}

func (ConversationsSeeder) Name() string { return "conversations" }

func (ConversationsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "conversations", "id", "participants", "updated_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "messages", "id", "conversation_id", "sent_at", "is_read"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, c := range seed.Conversations() {
			if err := pgrepo.InsertConversation(ctx, tx, c); err != nil {
				return err
			}
		}
		for _, m := range seed.Messages() {
			if err := pgrepo.InsertMessage(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}
