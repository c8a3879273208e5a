package handler

import (
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Get)
}

func (h *DashboardHandler) Get(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	d, err := h.uc.Get(c.Context(), *st.Profile)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}
