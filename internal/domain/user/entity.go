package user

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SocialMedia holds optional handles; empty means not linked.
type SocialMedia struct {
	Spotify    string `json:"spotify,omitempty"`
	SoundCloud string `json:"soundcloud,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	YouTube    string `json:"youtube,omitempty"`
	TikTok     string `json:"tiktok,omitempty"`
}

type Profile struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	FullName          string      `json:"full_name"`
	Bio               string      `json:"bio"`
	Location          string      `json:"location"`
	ProfilePictureURL string      `json:"profile_picture_url,omitempty"`
	HeaderImageURL    string      `json:"header_image_url,omitempty"`
	IsVerified        bool        `json:"is_verified"`
	SocialMedia       SocialMedia `json:"social_media"`
	Skills            []string    `json:"skills"`
	Genres            []string    `json:"genres"`
	Experience        string      `json:"experience"`
	FollowerCount     int         `json:"follower_count"`
	FollowingCount    int         `json:"following_count"`
	Rating            float64     `json:"rating"`
	RatingCount       int         `json:"rating_count"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ProfileUpdate carries the owner-editable fields of a profile. Nil fields
// are left untouched by Apply.
type ProfileUpdate struct {
	FullName          *string
	Bio               *string
	Location          *string
	ProfilePictureURL *string
	HeaderImageURL    *string
	SocialMedia       *SocialMedia
	Skills            *[]string
	Genres            *[]string
	Experience        *string
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Bio == nil && u.Location == nil &&
		u.ProfilePictureURL == nil && u.HeaderImageURL == nil &&
		u.SocialMedia == nil && u.Skills == nil && u.Genres == nil &&
		u.Experience == nil
}

// Apply returns a copy of p with the non-nil fields of u merged in.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.ProfilePictureURL != nil {
		p.ProfilePictureURL = *u.ProfilePictureURL
	}
	if u.HeaderImageURL != nil {
		p.HeaderImageURL = *u.HeaderImageURL
	}
	if u.SocialMedia != nil {
		p.SocialMedia = *u.SocialMedia
	}
	if u.Skills != nil {
		p.Skills = append([]string(nil), (*u.Skills)...)
	}
	if u.Genres != nil {
		p.Genres = append([]string(nil), (*u.Genres)...)
	}
	if u.Experience != nil {
		p.Experience = *u.Experience
	}
	return p
}

// Clone returns a deep copy so callers never share tag slices with a
// collection.
func (p Profile) Clone() Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Genres = append([]string(nil), p.Genres...)
	return p
}

// NormalizeEmail is the comparison key for email lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
