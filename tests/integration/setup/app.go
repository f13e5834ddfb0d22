package setup

import (
	"context"
	"testing"

	"github.com/daniswara/sitepanel/internal/delivery/http"
	"github.com/daniswara/sitepanel/internal/delivery/http/middleware"
	"github.com/daniswara/sitepanel/internal/delivery/http/route"
	"github.com/daniswara/sitepanel/internal/repository"
	"github.com/daniswara/sitepanel/internal/usecase"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	AdminUsername  = "admin"
	AdminPassword  = "admin-test-password"
	TestBucketName = "sitepanel-test"
)

func SetupTestApp(t *testing.T, pgURL, redisURL, minioURL string) (*fiber.App, *pgxpool.Pool, *redis.Client, *minio.Client) {
	t.Log("Setting up test application...")

	ctx := context.Background()

	// 1. Create test config with test infrastructure values
	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", pgURL)
	_ = testConfig.Set("REDIS_URL", redisURL)
	_ = testConfig.Set("MINIO_URL", minioURL)
	_ = testConfig.Set("MINIO_HTTP", "http://")
	_ = testConfig.Set("MINIO_BUCKET_NAME", TestBucketName)
	_ = testConfig.Set("MINIO_USER", "minioadmin")
	_ = testConfig.Set("MINIO_PASSWORD", "minioadmin")
	_ = testConfig.Set("JWT_SECRET_KEY", "test-secret-key-for-jwt-token-generation")
	_ = testConfig.Set("ADMIN_USERNAME", AdminUsername)
	_ = testConfig.Set("ADMIN_PASSWORD", AdminPassword)

	// 2. Connect to PostgreSQL
	t.Log("Connecting to test PostgreSQL...")
	dbPool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("failed to connect to test db: %v", err)
	}

	// 3. Connect to Redis
	t.Log("Connecting to test Redis...")
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}

	// 4. Connect to MinIO
	t.Log("Connecting to test MinIO...")
	minioClient, err := minio.New(minioURL, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to connect to minio: %v", err)
	}

	exists, err := minioClient.BucketExists(ctx, TestBucketName)
	if err != nil {
		t.Fatalf("failed to check minio bucket: %v", err)
	}

	if !exists {
		t.Logf("Creating MinIO bucket: %s", TestBucketName)
		err = minioClient.MakeBucket(ctx, TestBucketName, minio.MakeBucketOptions{})
		if err != nil {
			t.Fatalf("failed to create minio bucket: %v", err)
		}
	}

	// 5. Setup logger
	zapLogger := zap.NewExample()
	defer func() {
		_ = zapLogger.Sync()
	}()

	// 6. Setup repositories
	userRepository := repository.NewUserRepository(zapLogger, dbPool, redisClient)
	profileRepository := repository.NewProfileRepository(zapLogger, dbPool, minioClient)
	bannerRepository := repository.NewBannerRepository(zapLogger, dbPool, redisClient, minioClient)

	// 7. Setup usecases
	userUsecase := usecase.NewUserUsecase(userRepository, dbPool, zapLogger, testConfig)
	profileUsecase := usecase.NewProfileUsecase(profileRepository, userRepository, dbPool, zapLogger, testConfig)
	bannerUsecase := usecase.NewBannerUsecase(bannerRepository, profileRepository, userRepository, dbPool, zapLogger, testConfig)

	// Seed the admin account the tests log in with
	if err := userUsecase.EnsureSuperuser(ctx); err != nil {
		t.Fatalf("failed to seed superuser: %v", err)
	}

	// 8. Setup controllers
	userController := http.NewUserController(userUsecase, zapLogger, testConfig)
	profileController := http.NewProfileController(profileUsecase, zapLogger, testConfig)
	bannerController := http.NewBannerController(bannerUsecase, zapLogger, testConfig)

	// 9. Setup middleware
	authMiddleware := middleware.NewAuthMiddleware(nil, zapLogger, testConfig, userUsecase)

	// 10. Setup Fiber app
	fiberApp := fiber.New(fiber.Config{
		AppName:               "Sitepanel Test",
		DisableStartupMessage: true,
		DisableKeepalive:      true, // Important for tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// 11. Setup routes
	routeConfig := route.RouteConfig{
		App:               fiberApp,
		Log:               zapLogger,
		UserController:    userController,
		ProfileController: profileController,
		BannerController:  bannerController,
		AuthMiddleware:    authMiddleware,
	}

	routeConfig.SetupRoute()

	t.Log("Test application setup completed successfully")

	return fiberApp, dbPool, redisClient, minioClient
}
