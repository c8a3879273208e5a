package handler

import (
	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type socialMediaRequest struct {
	Spotify    string `json:"spotify" validate:"max=100"`
	SoundCloud string `json:"soundcloud" validate:"max=100"`
	Instagram  string `json:"instagram" validate:"max=100"`
	YouTube    string `json:"youtube" validate:"max=100"`
	TikTok     string `json:"tiktok" validate:"max=100"`
}

type updateProfileRequest struct {
	FullName          *string             `json:"full_name" validate:"omitempty,max=120"`
	Bio               *string             `json:"bio" validate:"omitempty,max=1000"`
	Location          *string             `json:"location" validate:"omitempty,max=120"`
	ProfilePictureURL *string             `json:"profile_picture_url" validate:"omitempty,max=500"`
	HeaderImageURL    *string             `json:"header_image_url" validate:"omitempty,max=500"`
	Experience        *string             `json:"experience" validate:"omitempty,max=60"`
	SocialMedia       *socialMediaRequest `json:"social_media"`
	Skills            *[]string           `json:"skills" validate:"omitempty,max=20,dive,max=40"`
	Genres            *[]string           `json:"genres" validate:"omitempty,max=20,dive,max=40"`
}

func (r updateProfileRequest) toUpdate() user.ProfileUpdate {
	upd := user.ProfileUpdate{
		FullName:          r.FullName,
		Bio:               r.Bio,
		Location:          r.Location,
		ProfilePictureURL: r.ProfilePictureURL,
		HeaderImageURL:    r.HeaderImageURL,
		Experience:        r.Experience,
		Skills:            r.Skills,
		Genres:            r.Genres,
	}
	if sm := r.SocialMedia; sm != nil {
		upd.SocialMedia = &user.SocialMedia{
			Spotify:    sm.Spotify,
			SoundCloud: sm.SoundCloud,
			Instagram:  sm.Instagram,
			YouTube:    sm.YouTube,
			TikTok:     sm.TikTok,
		}
	}
	return upd
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st.Profile)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	store, _, err := currentState(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	prof, err := h.uc.UpdateProfile(c.Context(), store, req.toUpdate())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", prof)
}
