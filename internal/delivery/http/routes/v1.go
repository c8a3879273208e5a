package routes

import (
	v1 "middlebeat/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type V1Handlers = v1.Handlers

func RegisterV1(r fiber.Router, h V1Handlers) {
	if r == nil {
		return
	}

	v1.Register(r, h)
}
