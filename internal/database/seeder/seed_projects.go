package seeder

import (
	"context"

	"middlebeat/internal/database"
	pgrepo "middlebeat/internal/repository/postgres"
	"middlebeat/internal/seed"
)

type ProjectsSeeder struct{}

func (ProjectsSeeder) Name() string { return "projects" }

func (ProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "projects", "id", "title", "status", "applicants", "budget_min", "budget_max"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range seed.Projects() {
			if err := pgrepo.InsertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
