package v1

import (
	"middlebeat/internal/delivery/http/handler"
	"middlebeat/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *middleware.AuthMiddleware
	AuthH     *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	User      *handler.UserHandler
	Discover  *handler.DiscoverHandler
	Project   *handler.ProjectHandler
	Dashboard *handler.DashboardHandler
	Message   *handler.MessageHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(r.Group("/catalog"))
	}

	if h.AuthH != nil {
		h.AuthH.RegisterRoutes(r.Group("/auth"))
	}

	if h.Auth == nil {
		return
	}
	// Group middleware matches by prefix, so public routes go above this line.
	protected := r.Group("", h.Auth.Middleware())

	if h.AuthH != nil {
		h.AuthH.RegisterSessionRoutes(protected.Group("/auth"))
	}
	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Discover != nil {
		h.Discover.RegisterRoutes(protected)
	}
	if h.Project != nil {
		h.Project.RegisterRoutes(protected)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(protected)
	}
	if h.Message != nil {
		h.Message.RegisterRoutes(protected)
	}
}
