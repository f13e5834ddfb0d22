package usecase

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/daniswara/sitepanel/internal/observability"
	"github.com/daniswara/sitepanel/internal/repository"
	"github.com/daniswara/sitepanel/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type BannerUsecase struct {
	BannerRepository  *repository.BannerRepository
	ProfileRepository *repository.ProfileRepository
	UserRepository    *repository.UserRepository
	DB                *pgxpool.Pool
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewBannerUsecase(bannerRepository *repository.BannerRepository, profileRepository *repository.ProfileRepository, userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *BannerUsecase {
	return &BannerUsecase{
		BannerRepository:  bannerRepository,
		ProfileRepository: profileRepository,
		UserRepository:    userRepository,
		DB:                db,
		Log:               zap,
		Config:            koanf,
	}
}

// validateBannerUpdate runs the whole validation sequence before anything is
// touched, first failure wins so a rejected request never writes.
func validateBannerUpdate(page string, payload model.BannerUpdateRequest) error {
	if !model.IsValidPage(page) {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Unknown page",
			Param:   "page",
		}
	}

	if payload.Empty() {
		return &model.ValidationError{
			Code:    constant.ERR_NO_CHANGE_SUPPLIED_CODE,
			Message: "Nothing to update, no fields were supplied",
			Param:   "form",
		}
	}

	if payload.BannerType != nil && !model.IsValidBannerType(*payload.BannerType) {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Banner type must be image or video",
			Param:   "banner_type",
		}
	}

	if payload.File != nil && payload.BannerType == nil {
		return &model.ValidationError{
			Code:    constant.ERR_MISSING_TYPE_FOR_FILE_CODE,
			Message: "Please select a banner type before saving",
			Param:   "banner_type",
		}
	}

	if payload.File != nil {
		err := util.ValidateBannerFile(payload.File, *payload.BannerType, "banner_file")
		if err != nil {
			return err
		}
	}

	return nil
}

// UpdateBanner merges the supplied fields onto the page's banner, creating
// the row lazily on first update. Only supplied fields overwrite stored
// state, the response names the fields that actually changed.
func (usecase *BannerUsecase) UpdateBanner(ctx *fiber.Ctx, page string, payload model.BannerUpdateRequest) (model.BannerUpdateResponse, error) {
	response := model.BannerUpdateResponse{Page: page}

	err := validateBannerUpdate(page, payload)
	if err != nil {
		return response, err
	}

	ctxContext := ctx.Context()
	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")

	var fileData []byte
	var objectKey string
	if payload.File != nil {
		src, err := payload.File.Open()
		if err != nil {
			return response, err
		}

		fileData, err = io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return response, err
		}

		objectKey = fmt.Sprintf("banners/%s/%s.%s", page, uuid.New(), util.FileExt(payload.File.Filename))
	}

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return response, err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	banner, found, err := usecase.BannerRepository.GetBannerForUpdate(ctxContext, tx, page)
	if err != nil {
		return response, err
	}

	if !found {
		banner = model.Banner{Page: page}
	}

	changed := []string{}

	if payload.Heading != nil {
		banner.Heading = payload.Heading
		changed = append(changed, "heading")
	}

	if payload.Description != nil {
		banner.Description = payload.Description
		changed = append(changed, "description")
	}

	if payload.BannerType != nil {
		banner.BannerType = payload.BannerType
		changed = append(changed, "banner_type")
	}

	var oldObjectKey *string
	if payload.File != nil {
		oldObjectKey = banner.ObjectKey
		banner.Bucket = &bucketName
		banner.ObjectKey = &objectKey
		changed = append(changed, "banner_file")
	}

	banner.UpdatedAt = time.Now().UTC()

	err = usecase.BannerRepository.UpsertBanner(ctxContext, tx, banner)
	if err != nil {
		return response, err
	}

	if payload.File != nil {
		contentType := util.ContentTypeForExt(util.FileExt(payload.File.Filename))
		err = usecase.BannerRepository.UploadBannerObject(ctxContext, bucketName, objectKey, bytes.NewReader(fileData), int64(len(fileData)), contentType)
		if err != nil {
			return response, err
		}
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return response, err
	}

	commited = true

	// cleanup after commit, a leaked object is preferable to a lost row
	if oldObjectKey != nil {
		err = usecase.BannerRepository.RemoveBannerObject(ctxContext, bucketName, *oldObjectKey)
		if err != nil {
			usecase.Log.Warn("failed to remove replaced banner object",
				zap.String("objectKey", *oldObjectKey), zap.Error(err))
		}
	}

	err = usecase.BannerRepository.InvalidatePageCache(ctxContext, page)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx.UserContext(), usecase.Log).Info("banner updated",
		zap.String("page", page), zap.Strings("changedFields", changed))

	response.ChangedFields = changed
	response.Message = fmt.Sprintf("%s page updated successfully", page)

	return response, nil
}

// GetPageBanners serves the public read path for one page, backed by the
// per-page redis cache.
func (usecase *BannerUsecase) GetPageBanners(ctx *fiber.Ctx, page string) ([]model.BannerResponse, error) {
	if !model.IsValidPage(page) {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Unknown page",
			Param:   "page",
		}
	}

	ctxContext := ctx.Context()

	cached, err := usecase.BannerRepository.GetPageCache(ctxContext, page)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		responses := []model.BannerResponse{}
		err = sonic.Unmarshal(cached, &responses)
		if err == nil {
			return responses, nil
		}
		usecase.Log.Warn("failed to decode cached page banners", zap.String("page", page), zap.Error(err))
	}

	banners, err := usecase.BannerRepository.GetBannersByPage(ctxContext, page)
	if err != nil {
		return nil, err
	}

	responses := usecase.toBannerResponses(banners)

	data, err := sonic.Marshal(responses)
	if err != nil {
		return nil, err
	}

	err = usecase.BannerRepository.SetPageCache(ctxContext, page, data)
	if err != nil {
		usecase.Log.Warn("failed to cache page banners", zap.String("page", page), zap.Error(err))
	}

	return responses, nil
}

// Dashboard returns the banners for a page (default home, "all" lists every
// page) together with the caller's profile. Reads go straight to the
// database so an admin always sees the state they just saved.
func (usecase *BannerUsecase) Dashboard(ctx *fiber.Ctx, userId uuid.UUID, page string) (model.DashboardResponse, error) {
	if page == "" {
		page = model.PageHome
	}

	response := model.DashboardResponse{Page: page}

	if page != model.PageAll && !model.IsValidPage(page) {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Unknown page",
			Param:   "page",
		}
	}

	ctxContext := ctx.Context()

	var banners []model.Banner
	var err error
	if page == model.PageAll {
		banners, err = usecase.BannerRepository.GetAllBanners(ctxContext)
	} else {
		banners, err = usecase.BannerRepository.GetBannersByPage(ctxContext, page)
	}
	if err != nil {
		return response, err
	}

	response.Banners = usecase.toBannerResponses(banners)

	user, err := usecase.UserRepository.GetUserById(ctxContext, userId)
	if err != nil {
		return response, err
	}

	profile, found, err := usecase.ProfileRepository.GetProfile(ctxContext, userId)
	if err != nil {
		return response, err
	}

	profileResponse := model.ProfileResponse{
		UserId:   userId,
		Username: user.Username,
	}
	if found {
		profileResponse.UpdateDatetime = profile.UpdateDatetime
		if profile.ObjectKey != nil {
			url := usecase.objectURL(*profile.ObjectKey)
			profileResponse.Photo = &url
		}
	}
	response.Profile = &profileResponse

	return response, nil
}

func (usecase *BannerUsecase) toBannerResponses(banners []model.Banner) []model.BannerResponse {
	responses := []model.BannerResponse{}
	for _, banner := range banners {
		response := model.BannerResponse{
			Page:        banner.Page,
			BannerType:  banner.BannerType,
			Heading:     banner.Heading,
			Description: banner.Description,
			UpdatedAt:   banner.UpdatedAt,
		}
		if banner.ObjectKey != nil {
			url := usecase.objectURL(*banner.ObjectKey)
			response.BannerFile = &url
		}
		responses = append(responses, response)
	}

	return responses
}

func (usecase *BannerUsecase) objectURL(objectKey string) string {
	return fmt.Sprintf("%s%s/%s/%s",
		usecase.Config.String("MINIO_HTTP"),
		usecase.Config.String("MINIO_URL"),
		usecase.Config.String("MINIO_BUCKET_NAME"),
		objectKey,
	)
}
