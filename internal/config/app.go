package config

import (
	"context"

	http "github.com/daniswara/sitepanel/internal/delivery/http"
	"github.com/daniswara/sitepanel/internal/delivery/http/middleware"
	"github.com/daniswara/sitepanel/internal/delivery/http/route"
	"github.com/daniswara/sitepanel/internal/repository"
	"github.com/daniswara/sitepanel/internal/usecase"
	"github.com/minio/minio-go/v7"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
}

func Server(config *ServerConfig) {
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	userUsecase := usecase.NewUserUsecase(userRepository, config.DB, config.Log, config.Config)
	userController := http.NewUserController(userUsecase, config.Log, config.Config)

	profileRepository := repository.NewProfileRepository(config.Log, config.DB, config.MinIO)
	profileUsecase := usecase.NewProfileUsecase(profileRepository, userRepository, config.DB, config.Log, config.Config)
	profileController := http.NewProfileController(profileUsecase, config.Log, config.Config)

	bannerRepository := repository.NewBannerRepository(config.Log, config.DB, config.DBCache, config.MinIO)
	bannerUsecase := usecase.NewBannerUsecase(bannerRepository, profileRepository, userRepository, config.DB, config.Log, config.Config)
	bannerController := http.NewBannerController(bannerUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, userUsecase)

	err := userUsecase.EnsureSuperuser(context.Background())
	if err != nil {
		config.Log.Fatal("failed to seed initial superuser", zap.Error(err))
	}

	routeConfig := route.RouteConfig{
		App:               config.Router,
		Log:               config.Log,
		UserController:    userController,
		ProfileController: profileController,
		BannerController:  bannerController,
		AuthMiddleware:    authMiddleware,
	}

	routeConfig.SetupRoute()
}
