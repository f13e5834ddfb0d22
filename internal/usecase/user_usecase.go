package usecase

import (
	"context"
	"time"

	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/daniswara/sitepanel/internal/repository"
	"github.com/daniswara/sitepanel/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	UserRepository *repository.UserRepository
	DB             *pgxpool.Pool
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewUserUsecase(userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		DB:             db,
		Log:            zap,
		Config:         koanf,
	}
}

func (usecase *UserUsecase) Login(ctx *fiber.Ctx, payload model.UserLoginRequest) (model.TokenResponse, error) {
	response := model.TokenResponse{}

	if payload.Username == "" {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username is required",
			Param:   "username",
		}
	}

	if payload.Password == "" {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required",
			Param:   "password",
		}
	}

	ctxContext := ctx.Context()

	userId, passwordHash, err := usecase.UserRepository.GetUserAuth(ctxContext, payload.Username)
	if err != nil {
		return response, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(payload.Password))
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Wrong username or password",
			Param:   "password",
		}
	}

	jwtSecretKey := usecase.Config.String("JWT_SECRET_KEY")

	response, err = util.GenerateTokenPair(userId, jwtSecretKey)
	if err != nil {
		return response, err
	}

	err = usecase.UserRepository.SetAuthTokenInCache(ctxContext, response.AccessToken, response.RefreshToken, userId)
	if err != nil {
		return response, err
	}

	return response, nil
}

// AuthenticateRequest verifies the bearer token on a request. The token must
// both parse with the signing key and match the hash held in redis, so logout
// revokes it immediately even before expiry.
func (usecase *UserUsecase) AuthenticateRequest(ctx *fiber.Ctx) (uuid.UUID, error) {
	authHeader := ctx.Get("Authorization")
	jwtSecretKey := usecase.Config.String("JWT_SECRET_KEY")

	accessToken, userId, err := util.ValidateAccessToken(authHeader, jwtSecretKey)
	if err != nil {
		return userId, err
	}

	cachedHash, err := usecase.UserRepository.GetAccessTokenInCache(ctx.Context(), userId)
	if err != nil {
		return userId, err
	}

	if util.HashToken(accessToken) != cachedHash {
		return userId, &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "Authorization token is no longer valid",
			Param:   "accessToken",
		}
	}

	return userId, nil
}

// RequireSuperuser gates the admin surface, regular accounts get a 403.
func (usecase *UserUsecase) RequireSuperuser(ctx *fiber.Ctx, userId uuid.UUID) error {
	user, err := usecase.UserRepository.GetUserById(ctx.Context(), userId)
	if err != nil {
		return err
	}

	if !user.IsSuperuser {
		return &model.ValidationError{
			Code:    constant.ERR_FORBIDDEN_ERROR,
			Message: "Superuser access is required",
			Param:   "userId",
		}
	}

	return nil
}

func (usecase *UserUsecase) Logout(ctx *fiber.Ctx, userId uuid.UUID) error {
	return usecase.UserRepository.RemoveAuthToken(ctx.Context(), userId)
}

func (usecase *UserUsecase) GetUserInfo(ctx *fiber.Ctx, userId uuid.UUID) (model.UserResponse, error) {
	user, err := usecase.UserRepository.GetUserById(ctx.Context(), userId)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		Id:          user.Id,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
	}, nil
}

// EnsureSuperuser seeds the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD at startup. Idempotent, does nothing when the account
// already exists or the variables are unset.
func (usecase *UserUsecase) EnsureSuperuser(ctx context.Context) error {
	username := usecase.Config.String("ADMIN_USERNAME")
	password := usecase.Config.String("ADMIN_PASSWORD")

	if username == "" || password == "" {
		usecase.Log.Info("admin seed credentials not configured, skipping superuser bootstrap")
		return nil
	}

	exists, err := usecase.UserRepository.CheckUsernameUnique(ctx, username)
	if err != nil {
		return err
	}

	if exists == 1 {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := model.User{
		Id:             uuid.New(),
		Username:       username,
		Password:       string(passwordHash),
		IsSuperuser:    true,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return err
	}

	usecase.Log.Info("seeded initial superuser", zap.String("username", username))

	return nil
}
