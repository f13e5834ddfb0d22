package middleware

import (
	"errors"

	"github.com/daniswara/sitepanel/internal/model"
	"github.com/daniswara/sitepanel/internal/usecase"
	"github.com/daniswara/sitepanel/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	App         *fiber.App
	Log         *zap.Logger
	Config      *koanf.Koanf
	UserUsecase *usecase.UserUsecase
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf, userUsecase *usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		App:         app,
		Log:         zap,
		Config:      koanf,
		UserUsecase: userUsecase,
	}
}

// ProtectedRoute authenticates the bearer token and stores the user id in
// ctx.Locals("userId"). Failures answer with JSON, the frontend owns any
// redirect to its login screen.
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var validationErr *model.ValidationError

		userId, err := middleware.UserUsecase.AuthenticateRequest(ctx)
		if err != nil {
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}

// SuperuserRoute guards admin endpoints, it must run after ProtectedRoute.
func (middleware *AuthMiddleware) SuperuserRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var validationErr *model.ValidationError

		userId := ctx.Locals("userId").(uuid.UUID)

		err := middleware.UserUsecase.RequireSuperuser(ctx, userId)
		if err != nil {
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseForbidden(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		return ctx.Next()
	}
}
