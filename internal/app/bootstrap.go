package app

import (
	"errors"
	"strings"

	"middlebeat/internal/config"
	"middlebeat/internal/delivery/http/handler"
	"middlebeat/internal/delivery/http/middleware"
	"middlebeat/internal/delivery/http/routes"
	"middlebeat/internal/pkg/logger"
	"middlebeat/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Config, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the logger, the container and the HTTP app. The returned
// cleanup releases them in reverse order.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		return nil, nil, err
	}

	c, err := NewContainer(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	app := New(c)
	cleanup := func() error {
		err := c.Close()
		_ = log.Sync()
		return err
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
	}))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	deps := map[string]handler.Pinger{"redis": c.Redis}
	if c.DB != nil {
		deps["postgres"] = c.DB
	}

	limiter := middleware.NewRateLimitMiddleware(c.Config.RateLimit.AuthPerMinute, c.Config.RateLimit.AuthBurst)

	wsHandler := ws.NewHandler(c.Hub, c.authenticateSocket, c.Logger.Named("ws"))

	registry := routes.NewRegistry(
		handler.NewHealthHandler(deps),
		wsHandler,
		routes.V1Handlers{
			Auth:      middleware.NewAuthMiddleware(c.Auth),
			AuthH:     handler.NewAuthHandler(c.Auth, limiter.Middleware()),
			Catalog:   handler.NewCatalogHandler(),
			User:      handler.NewUserHandler(c.User),
			Discover:  handler.NewDiscoverHandler(c.Discover),
			Project:   handler.NewProjectHandler(c.Project),
			Dashboard: handler.NewDashboardHandler(c.Dashboard),
			Message:   handler.NewMessageHandler(c.Message),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", errors.New("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
