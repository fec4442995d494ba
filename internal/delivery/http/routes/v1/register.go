package v1

import (
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Register wires the whole v1 surface: repositories over the shared pool,
// usecases on top, then the route groups. Everything except /health lives
// behind the bearer-token middleware; /admin additionally requires the
// caller's profile to carry the admin flag.
func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.Cache) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	profileRepo := repository.NewPostgresProfileRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	swapRepo := repository.NewPostgresSwapRequestRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	messageRepo := repository.NewPostgresAdminMessageRepository(db)

	profileUC := usecase.NewProfileUsecase(profileRepo, skillRepo, ratingRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, profileRepo)
	swapUC := usecase.NewSwapUsecase(swapRepo)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, swapRepo, cache)
	browseUC := usecase.NewBrowseUsecase(profileRepo, cache)
	adminUC := usecase.NewAdminUsecase(profileRepo, skillRepo, swapRepo, messageRepo, cache)

	profileHandler := handler.NewProfileHandler(profileUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	swapHandler := handler.NewSwapHandler(swapUC)
	ratingHandler := handler.NewRatingHandler(ratingUC)
	browseHandler := handler.NewBrowseHandler(browseUC)
	adminHandler := handler.NewAdminHandler(adminUC, skillUC, profileUC)

	protected := r.Group("", authMw.Middleware())

	profileHandler.RegisterRoutes(protected)
	skillHandler.RegisterRoutes(protected)
	swapHandler.RegisterRoutes(protected)
	ratingHandler.RegisterRoutes(protected)
	browseHandler.RegisterRoutes(protected)
	adminHandler.RegisterPublicRoutes(protected)

	adminMw := middleware.NewAdminMiddleware(profileRepo)
	adminGroup := protected.Group("/admin", adminMw.Middleware())
	adminHandler.RegisterRoutes(adminGroup)
}
