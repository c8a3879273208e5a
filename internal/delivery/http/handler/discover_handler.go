package handler

import (
	"middlebeat/internal/delivery/http/middleware"
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DiscoverHandler struct {
	uc usecase.DiscoverUsecase
}

func NewDiscoverHandler(uc usecase.DiscoverUsecase) *DiscoverHandler {
	return &DiscoverHandler{uc: uc}
}

func (h *DiscoverHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/discover", h.Search)
}

// Search reads q, skills, genres, location, verified and min_rating. Tag
// lists are comma separated.
func (h *DiscoverHandler) Search(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	verified, err := optionalBool(c.Query("verified"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid verified filter", nil, err)
	}
	minRating, err := optionalFloat(c.Query("min_rating"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid min_rating filter", nil, err)
	}

	items, err := h.uc.Search(c.Context(), st.User.ID, usecase.DiscoverParams{
		Query:     c.Query("q"),
		Skills:    splitList(c.Query("skills")),
		Genres:    splitList(c.Query("genres")),
		Location:  c.Query("location"),
		Verified:  verified,
		MinRating: minRating,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, items)
}
