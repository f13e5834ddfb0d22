package usecase

import (
	"bytes"
	"fmt"
	"io"
	"time"

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

type ProfileUsecase struct {
	ProfileRepository *repository.ProfileRepository
	UserRepository    *repository.UserRepository
	DB                *pgxpool.Pool
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewProfileUsecase(profileRepository *repository.ProfileRepository, userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *ProfileUsecase {
	return &ProfileUsecase{
		ProfileRepository: profileRepository,
		UserRepository:    userRepository,
		DB:                db,
		Log:               zap,
		Config:            koanf,
	}
}

// UpdatePhoto replaces the caller's profile photo. Any file type is accepted
// here, only banners carry an extension allow-list.
func (usecase *ProfileUsecase) UpdatePhoto(ctx *fiber.Ctx, userId uuid.UUID) (model.ProfilePhotoUpdateResponse, error) {
	response := model.ProfilePhotoUpdateResponse{}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil || fileHeader == nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_NO_FILE_PROVIDED_CODE,
			Message: "No file selected for upload",
			Param:   "photo",
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response, err
	}

	fileData, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return response, err
	}

	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")

	objectKey := fmt.Sprintf("profiles/%s", uuid.New())
	if ext := util.FileExt(fileHeader.Filename); ext != "" {
		objectKey = fmt.Sprintf("%s.%s", objectKey, ext)
	}

	ctxContext := ctx.Context()
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

	now := time.Now().UTC()

	profile, found, err := usecase.ProfileRepository.GetProfileForUpdate(ctxContext, tx, userId)
	if err != nil {
		return response, err
	}

	if !found {
		profile = model.Profile{
			Id:             uuid.New(),
			UserId:         userId,
			CreateDatetime: now,
		}
	}

	oldObjectKey := profile.ObjectKey
	profile.Bucket = &bucketName
	profile.ObjectKey = &objectKey
	profile.UpdateDatetime = now

	err = usecase.ProfileRepository.UpsertProfile(ctxContext, tx, profile)
	if err != nil {
		return response, err
	}

	contentType := util.ContentTypeForExt(util.FileExt(fileHeader.Filename))
	err = usecase.ProfileRepository.UploadPhotoObject(ctxContext, bucketName, objectKey, bytes.NewReader(fileData), int64(len(fileData)), contentType)
	if err != nil {
		return response, err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return response, err
	}

	commited = true

	if oldObjectKey != nil {
		err = usecase.ProfileRepository.RemovePhotoObject(ctxContext, bucketName, *oldObjectKey)
		if err != nil {
			usecase.Log.Warn("failed to remove replaced profile photo",
				zap.String("objectKey", *oldObjectKey), zap.Error(err))
		}
	}

	observability.WithContext(ctx.UserContext(), usecase.Log).Info("profile photo updated",
		zap.String("userId", userId.String()))

	response.Photo = usecase.objectURL(objectKey)
	response.Message = "Profile photo updated successfully"

	return response, nil
}

// GetMyProfile returns the caller's account together with the photo URL when
// a photo has been uploaded.
func (usecase *ProfileUsecase) GetMyProfile(ctx *fiber.Ctx, userId uuid.UUID) (model.ProfileResponse, error) {
	ctxContext := ctx.Context()

	user, err := usecase.UserRepository.GetUserById(ctxContext, userId)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	response := model.ProfileResponse{
		UserId:   user.Id,
		Username: user.Username,
	}

	profile, found, err := usecase.ProfileRepository.GetProfile(ctxContext, userId)
	if err != nil {
		return response, err
	}

	if found {
		response.UpdateDatetime = profile.UpdateDatetime
		if profile.ObjectKey != nil {
			url := usecase.objectURL(*profile.ObjectKey)
			response.Photo = &url
		}
	}

	return response, nil
}

func (usecase *ProfileUsecase) objectURL(objectKey string) string {
	return fmt.Sprintf("%s%s/%s/%s",
		usecase.Config.String("MINIO_HTTP"),
		usecase.Config.String("MINIO_URL"),
		usecase.Config.String("MINIO_BUCKET_NAME"),
		objectKey,
	)
}
