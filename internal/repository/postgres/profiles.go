package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"middlebeat/internal/database"
	"middlebeat/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db database.DB
}

var _ user.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, full_name, bio, location, profile_picture_url, header_image_url,
	is_verified, social_media, skills, genres, experience,
	follower_count, following_count, rating, rating_count, created_at, updated_at`

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.Profile{}, user.ErrProfileNotFound
	}
	return p, err
}

func (r *ProfileRepository) Update(ctx context.Context, p user.Profile) error {
	social, err := json.Marshal(p.SocialMedia)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(
		ctx,
		`UPDATE profiles SET
			full_name = $2, bio = $3, location = $4, profile_picture_url = $5, header_image_url = $6,
			is_verified = $7, social_media = $8, skills = $9, genres = $10, experience = $11,
			follower_count = $12, following_count = $13, rating = $14, rating_count = $15, updated_at = $16
		WHERE id = $1`,
		p.ID,
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
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]user.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	var social []byte
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Bio,
		&p.Location,
		&p.ProfilePictureURL,
		&p.HeaderImageURL,
		&p.IsVerified,
		&social,
		&p.Skills,
		&p.Genres,
		&p.Experience,
		&p.FollowerCount,
		&p.FollowingCount,
		&p.Rating,
		&p.RatingCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return user.Profile{}, err
	}
	if len(social) > 0 {
		if err := json.Unmarshal(social, &p.SocialMedia); err != nil {
			return user.Profile{}, err
		}
	}
	return p, nil
}
