package usecase

import (
	"context"

	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/sanitize"
	"middlebeat/internal/session"
)

type UserUsecase interface {
	UpdateProfile(ctx context.Context, store *session.Store, upd user.ProfileUpdate) (user.Profile, error)
}

type User struct {
	discover DiscoverUsecase
}

func NewUserUsecase(discover DiscoverUsecase) *User {
	return &User{discover: discover}
}

// UpdateProfile strips markup from the free-text fields, applies the update
// through the session and drops cached searches that may hold the old
// profile.
func (u *User) UpdateProfile(ctx context.Context, store *session.Store, upd user.ProfileUpdate) (user.Profile, error) {
	if upd.IsEmpty() {
		return user.Profile{}, ErrInvalidInput
	}
	upd = sanitizeUpdate(upd)
	if upd.FullName != nil && *upd.FullName == "" {
		return user.Profile{}, ErrInvalidInput
	}

	p, err := store.UpdateProfile(ctx, upd)
	if err != nil {
		return user.Profile{}, err
	}
	if u.discover != nil {
		u.discover.Invalidate(ctx)
	}
	return p, nil
}

func sanitizeUpdate(upd user.ProfileUpdate) user.ProfileUpdate {
	text := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := sanitize.Text(*p)
		return &v
	}
	tags := func(p *[]string) *[]string {
		if p == nil {
			return nil
		}
		v := sanitize.Tags(*p)
		if v == nil {
			v = []string{}
		}
		return &v
	}

	upd.FullName = text(upd.FullName)
	upd.Bio = text(upd.Bio)
	upd.Location = text(upd.Location)
	upd.Experience = text(upd.Experience)
	upd.ProfilePictureURL = text(upd.ProfilePictureURL)
	upd.HeaderImageURL = text(upd.HeaderImageURL)
	upd.Skills = tags(upd.Skills)
	upd.Genres = tags(upd.Genres)
	if upd.SocialMedia != nil {
		sm := user.SocialMedia{
			Spotify:    sanitize.Text(upd.SocialMedia.Spotify),
			SoundCloud: sanitize.Text(upd.SocialMedia.SoundCloud),
			Instagram:  sanitize.Text(upd.SocialMedia.Instagram),
			YouTube:    sanitize.Text(upd.SocialMedia.YouTube),
			TikTok:     sanitize.Text(upd.SocialMedia.TikTok),
		}
		upd.SocialMedia = &sm
	}
	return upd
}
