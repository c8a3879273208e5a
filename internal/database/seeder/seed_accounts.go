package seeder

import (
	"context"

	"middlebeat/internal/database"
	"middlebeat/internal/domain/user"
	pgrepo "middlebeat/internal/repository/postgres"
	"middlebeat/internal/seed"
)

// AccountsSeeder inserts the demo users and their profiles. Demo users carry
// no password hash.
type AccountsSeeder struct{}

func (AccountsSeeder) Name() string { return "accounts" }

func (AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "role", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "user_id", "social_media", "skills", "genres"); err != nil {
		return err
	}

	profiles := map[string]user.Profile{}
	for _, p := range seed.Profiles() {
		profiles[p.UserID] = p
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, u := range seed.Users() {
			if err := pgrepo.InsertUser(ctx, tx, u); err != nil {
				return err
			}
			p, ok := profiles[u.ID]
			if !ok {
				continue
			}
			if err := pgrepo.InsertProfile(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
