package app

import (
	"context"
	"errors"
	"time"

	"middlebeat"
	"middlebeat/internal/config"
	"middlebeat/internal/database"
	"middlebeat/internal/database/migration"
	dbpostgres "middlebeat/internal/database/postgres"
	"middlebeat/internal/domain/message"
	"middlebeat/internal/domain/project"
	"middlebeat/internal/domain/user"
	"middlebeat/internal/infrastructure/cache"
	"middlebeat/internal/pkg/jwt"
	"middlebeat/internal/repository/memory"
	pgrepo "middlebeat/internal/repository/postgres"
	"middlebeat/internal/session"
	"middlebeat/internal/usecase"
	"middlebeat/internal/ws"

	"go.uber.org/zap"
)

// kvStore is what both cache backends offer: raw session entries and the
// JSON search cache.
type kvStore interface {
	session.KV
	usecase.SearchCache
}

type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *cache.Redis
	KV    kvStore

	Users    user.Repository
	Profiles user.ProfileRepository
	Projects project.Repository
	Messages message.Repository

	Sessions *session.Manager
	Hub      *ws.Hub
	Notifier *ws.Notifier

	Auth      *usecase.Auth
	User      *usecase.User
	Discover  *usecase.Discover
	Project   *usecase.Projects
	Dashboard *usecase.DashboardService
	Message   *usecase.Messages

	hubDone chan struct{}
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger, hubDone: make(chan struct{})}

	if err := c.initStorage(); err != nil {
		return nil, err
	}

	c.Redis = cache.NewRedis(cfg.Redis, logger.Named("redis"))
	if c.Redis.Available() {
		c.KV = c.Redis
	} else {
		logger.Warn("falling back to in-process key-value store; sessions will not survive a restart")
		c.KV = cache.NewMemory(cfg.Redis.TTL)
	}

	c.Hub = ws.NewHub(logger.Named("ws"))
	go c.Hub.Run(c.hubDone)
	c.Notifier = ws.NewNotifier(c.Hub)

	if cfg.IsProduction() && cfg.Session.AllowDemoAccounts {
		logger.Warn("demo accounts are enabled in production; fixture logins skip password checks")
	}
	c.Sessions = session.NewManager(c.Users, c.Profiles, c.KV, session.Options{
		LoginDelay:        cfg.Session.LoginDelay,
		RegisterDelay:     cfg.Session.RegisterDelay,
		UpdateDelay:       cfg.Session.UpdateDelay,
		AllowDemoAccounts: cfg.Session.AllowDemoAccounts,
		TTL:               cfg.Session.PersistedEntryTTL,
		Logger:            logger.Named("session"),
	})
	relay := newSessionRelay(c.Notifier)
	c.Sessions.OnChange(relay.changed)
	c.Sessions.OnEvict(relay.forget)

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	c.Discover = usecase.NewDiscoverUsecase(c.Profiles, c.KV, cfg.Redis.TTL, logger.Named("discover"))
	c.Auth = usecase.NewAuthUsecase(c.Sessions, jwtSvc, c.Discover, logger.Named("auth"))
	c.User = usecase.NewUserUsecase(c.Discover)
	c.Project = usecase.NewProjectUsecase(c.Projects, logger.Named("projects"))
	c.Dashboard = usecase.NewDashboardUsecase(c.Profiles, c.Projects, logger.Named("dashboard"))
	c.Message = usecase.NewMessageUsecase(c.Messages, c.Profiles, c.Notifier, logger.Named("messages"))

	return c, nil
}

func (c *Container) initStorage() error {
	switch c.Config.App.StoreDriver {
	case config.StoreDriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Logger.Named("postgres"))
		if err != nil {
			return err
		}
		r := migration.Runner{Source: middlebeat.Migrations(), Logger: c.Logger.Named("migration")}
		if err := r.Run(ctx, db); err != nil {
			_ = db.Close()
			return err
		}

		c.DB = db
		c.Users = pgrepo.NewUserRepository(db)
		c.Profiles = pgrepo.NewProfileRepository(db)
		c.Projects = pgrepo.NewProjectRepository(db)
		c.Messages = pgrepo.NewMessageRepository(db)
	default:
		store := memory.NewSeededStore()
		c.Users = store.Users()
		c.Profiles = store.Profiles()
		c.Projects = store.Projects()
		c.Messages = store.Messages()
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.hubDone != nil {
		close(c.hubDone)
		c.hubDone = nil
	}

	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
