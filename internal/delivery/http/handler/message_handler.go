package handler

import (
	"middlebeat/internal/pkg/response"
	"middlebeat/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/conversations", h.Conversations)
	r.Get("/conversations/:id/messages", h.Messages)
	r.Post("/conversations/:id/messages", h.Send)
}

func (h *MessageHandler) Conversations(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Conversations(c.Context(), st.User.ID, c.Query("q"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, items)
}

func (h *MessageHandler) Messages(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Messages(c.Context(), c.Params("id"), st.User.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, response.MessageOK, items)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	_, st, err := currentState(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	m, err := h.uc.Send(c.Context(), c.Params("id"), st.User.ID, req.Content)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Message sent", m)
}
