package handler

import (
	"middlebeat/internal/delivery/http/dto"
	"middlebeat/internal/domain/catalog"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.Skills)
	r.Get("/genres", h.Genres)
	r.Get("/roles", h.Roles)
}

func (h *CatalogHandler) Skills(c fiber.Ctx) error {
	return response.List(c, response.MessageOK, catalog.Skills())
}

func (h *CatalogHandler) Genres(c fiber.Ctx) error {
	return response.List(c, response.MessageOK, catalog.Genres())
}

func (h *CatalogHandler) Roles(c fiber.Ctx) error {
	roles := user.Roles()
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{
			Value:       string(r),
			DisplayName: user.RoleDisplayName(r),
			Description: user.RoleDescription(r),
		})
	}
	return response.List(c, response.MessageOK, out)
}
