package http

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

type ProfileController struct {
	ProfileUsecase *usecase.ProfileUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewProfileController(profileUsecase *usecase.ProfileUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ProfileController {
	return &ProfileController{
		ProfileUsecase: profileUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller ProfileController) UpdatePhoto(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var validationErr *model.ValidationError

	response, err := controller.ProfileUsecase.UpdatePhoto(ctx, userId)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ProfileController) GetMyProfile(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var validationErr *model.ValidationError

	response, err := controller.ProfileUsecase.GetMyProfile(ctx, userId)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponseNotFound(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
