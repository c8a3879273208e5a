// Package postgres implements the domain repositories over database.DB.
// Rows keep insertion order through the seq column, which stands in for the
// collection order of the in-memory store.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"middlebeat/internal/database"
	"middlebeat/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db database.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, role, password_hash, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	key := user.NormalizeEmail(email)
	if key == "" {
		return user.User{}, user.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, key)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	key := user.NormalizeEmail(email)
	if key == "" {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1)`, key).Scan(&exists)
	return exists, err
}

func (r *UserRepository) CreateAccount(ctx context.Context, u user.User, p user.Profile) error {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := InsertUser(ctx, tx, u); err != nil {
			return err
		}
		return InsertProfile(ctx, tx, p)
	})
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

// InsertUser and InsertProfile skip rows whose id already exists.
func InsertUser(ctx context.Context, q database.Querier, u user.User) error {
	_, err := q.Exec(
		ctx,
		`INSERT INTO users (id, email, role, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		u.ID,
		u.Email,
		string(u.Role),
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func InsertProfile(ctx context.Context, q database.Querier, p user.Profile) error {
	social, err := json.Marshal(p.SocialMedia)
	if err != nil {
		return err
	}
	_, err = q.Exec(
		ctx,
		`INSERT INTO profiles (
			id, user_id, full_name, bio, location, profile_picture_url, header_image_url,
			is_verified, social_media, skills, genres, experience,
			follower_count, following_count, rating, rating_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO NOTHING`,
		p.ID,
		p.UserID,
		p.FullName,
		p.Bio,
		p.Location,
		p.ProfilePictureURL,
		p.HeaderImageURL,
		p.IsVerified,
		social,
		nonNil(p.Skills),
		nonNil(p.Genres),
		p.Experience,
		p.FollowerCount,
		p.FollowingCount,
		p.Rating,
		p.RatingCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
