package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/daniswara/sitepanel/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pageCacheTTL = 10 * time.Minute

type BannerRepository struct {
	Log      *zap.Logger
	DB       *pgxpool.Pool
	DBCache  *redis.Client
	DBObject *minio.Client
}

func NewBannerRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client, minio *minio.Client) *BannerRepository {
	return &BannerRepository{
		Log:      zap,
		DB:       db,
		DBCache:  dbCache,
		DBObject: minio,
	}
}

// GetBannerForUpdate locks the banner row for a page inside a transaction.
// Returns found=false when the page has no banner yet.
func (repository *BannerRepository) GetBannerForUpdate(ctx context.Context, tx pgx.Tx, page string) (model.Banner, bool, error) {
	query := "SELECT page, banner_type, heading, description, bucket, object_key, updated_at FROM banners WHERE page=$1 FOR UPDATE"

	banner := model.Banner{}
	err := tx.QueryRow(ctx, query, page).Scan(&banner.Page, &banner.BannerType, &banner.Heading, &banner.Description, &banner.Bucket, &banner.ObjectKey, &banner.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return banner, false, nil
		}
		return banner, false, err
	}

	return banner, true, nil
}

// UpsertBanner persists the merged banner. The unique constraint on page is
// the concurrency safety net, there is no service-level locking beyond it.
func (repository *BannerRepository) UpsertBanner(ctx context.Context, tx pgx.Tx, banner model.Banner) error {
	query := `INSERT INTO banners (page, banner_type, heading, description, bucket, object_key, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (page) DO UPDATE SET
			banner_type = EXCLUDED.banner_type,
			heading = EXCLUDED.heading,
			description = EXCLUDED.description,
			bucket = EXCLUDED.bucket,
			object_key = EXCLUDED.object_key,
			updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query, banner.Page, banner.BannerType, banner.Heading, banner.Description, banner.Bucket, banner.ObjectKey, banner.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (repository *BannerRepository) GetBannersByPage(ctx context.Context, page string) ([]model.Banner, error) {
	query := "SELECT page, banner_type, heading, description, bucket, object_key, updated_at FROM banners WHERE page=$1"

	rows, err := repository.DB.Query(ctx, query, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBanners(rows)
}

func (repository *BannerRepository) GetAllBanners(ctx context.Context) ([]model.Banner, error) {
	query := "SELECT page, banner_type, heading, description, bucket, object_key, updated_at FROM banners ORDER BY page"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBanners(rows)
}

func scanBanners(rows pgx.Rows) ([]model.Banner, error) {
	banners := []model.Banner{}
	for rows.Next() {
		banner := model.Banner{}
		err := rows.Scan(&banner.Page, &banner.BannerType, &banner.Heading, &banner.Description, &banner.Bucket, &banner.ObjectKey, &banner.UpdatedAt)
		if err != nil {
			return nil, err
		}
		banners = append(banners, banner)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return banners, nil
}

// MinIO - object storage
func (repository *BannerRepository) UploadBannerObject(ctx context.Context, bucketName string, objectKey string, file io.Reader, size int64, contentType string) error {
	_, err := repository.DBObject.PutObject(ctx, bucketName, objectKey, file, size,
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return err
	}

	return nil
}

func (repository *BannerRepository) RemoveBannerObject(ctx context.Context, bucketName string, objectKey string) error {
	err := repository.DBObject.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return err
	}

	return nil
}

// Redis - read-path cache, keyed per page
func (repository *BannerRepository) GetPageCache(ctx context.Context, page string) ([]byte, error) {
	key := fmt.Sprintf("banners:page:%s", page)

	data, err := repository.DBCache.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return data, nil
}

func (repository *BannerRepository) SetPageCache(ctx context.Context, page string, data []byte) error {
	key := fmt.Sprintf("banners:page:%s", page)

	err := repository.DBCache.Set(ctx, key, data, pageCacheTTL).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *BannerRepository) InvalidatePageCache(ctx context.Context, page string) error {
	key := fmt.Sprintf("banners:page:%s", page)

	err := repository.DBCache.Del(ctx, key).Err()
	if err != nil {
		return err
	}

	return nil
}
