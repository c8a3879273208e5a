package seeder

import (
	"context"

	"middlebeat/internal/database"
)

// Seeder loads one group of fixture rows. Runs must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
