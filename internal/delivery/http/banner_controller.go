package http

import (
	"errors"

	requestlog "github.com/daniswara/sitepanel/internal/middleware"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/daniswara/sitepanel/internal/usecase"
	"github.com/daniswara/sitepanel/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type BannerController struct {
	BannerUsecase *usecase.BannerUsecase
	Log           *zap.Logger
	Config        *koanf.Koanf
}

func NewBannerController(bannerUsecase *usecase.BannerUsecase, zap *zap.Logger, koanf *koanf.Koanf) *BannerController {
	return &BannerController{
		BannerUsecase: bannerUsecase,
		Log:           zap,
		Config:        koanf,
	}
}

// bannerUpdateRequestFromForm reads the multipart form with key presence
// semantics: a field left out of the form stays nil and keeps its stored
// value, a field sent empty overwrites with the empty string.
func bannerUpdateRequestFromForm(ctx *fiber.Ctx) model.BannerUpdateRequest {
	payload := model.BannerUpdateRequest{}

	form, err := ctx.MultipartForm()
	if err != nil {
		// no multipart body at all counts as an empty update
		return payload
	}

	if values, ok := form.Value["heading"]; ok && len(values) > 0 {
		value := values[0]
		payload.Heading = &value
	}

	if values, ok := form.Value["description"]; ok && len(values) > 0 {
		value := values[0]
		payload.Description = &value
	}

	if values, ok := form.Value["banner_type"]; ok && len(values) > 0 {
		value := values[0]
		payload.BannerType = &value
	}

	if files, ok := form.File["banner_file"]; ok && len(files) > 0 {
		payload.File = files[0]
	}

	return payload
}

func (controller BannerController) UpdateBanner(ctx *fiber.Ctx) error {
	page := ctx.Params("page")
	payload := bannerUpdateRequestFromForm(ctx)

	var validationErr *model.ValidationError

	response, err := controller.BannerUsecase.UpdateBanner(ctx, page, payload)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, requestlog.GetLoggerFromContext(ctx), err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller BannerController) GetPage(ctx *fiber.Ctx) error {
	page := ctx.Params("page")

	var validationErr *model.ValidationError

	response, err := controller.BannerUsecase.GetPageBanners(ctx, page)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponseNotFound(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller BannerController) Dashboard(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)
	page := ctx.Query("page")

	var validationErr *model.ValidationError

	response, err := controller.BannerUsecase.Dashboard(ctx, userId, page)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendErrorResponse(ctx, err)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
