package route

import (
	"github.com/daniswara/sitepanel/internal/delivery/http"
	"github.com/daniswara/sitepanel/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App               *fiber.App
	Log               *zap.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	UserController    *http.UserController
	ProfileController *http.ProfileController
	BannerController  *http.BannerController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// public read path for the marketing site
	api.Get("/pages/:page", c.BannerController.GetPage)

	authGroup := api.Group("/auth", middleware.SetupAuthRateLimiter(c.Log))
	authGroup.Post("/login", c.UserController.Login)

	userGroup := api.Group("/users", c.AuthMiddleware.ProtectedRoute())
	userGroup.Get("/me", c.UserController.GetUserInfo)
	userGroup.Get("/profile", c.ProfileController.GetMyProfile)
	userGroup.Post("/logout", c.UserController.Logout)
	userGroup.Put("/photo", c.ProfileController.UpdatePhoto)

	// admin surface, superuser only
	api.Get("/dashboard", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.SuperuserRoute(), c.BannerController.Dashboard)

	bannerGroup := api.Group("/banners", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.SuperuserRoute())
	bannerGroup.Put("/:page", c.BannerController.UpdateBanner)
}
