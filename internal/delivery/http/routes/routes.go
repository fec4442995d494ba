package routes

import (
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg   config.Config
	db    database.DB
	cache usecase.Cache

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.Cache) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		health: handler.NewHealthHandler(),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache)
}
