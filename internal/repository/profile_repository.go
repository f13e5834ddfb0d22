package repository

import (
	"context"
	"errors"
	"io"

	"github.com/daniswara/sitepanel/internal/model"
	"github.com/google/uuid"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type ProfileRepository struct {
	Log      *zap.Logger
	DB       *pgxpool.Pool
	DBObject *minio.Client
}

func NewProfileRepository(zap *zap.Logger, db *pgxpool.Pool, minio *minio.Client) *ProfileRepository {
	return &ProfileRepository{
		Log:      zap,
		DB:       db,
		DBObject: minio,
	}
}

func (repository *ProfileRepository) GetProfile(ctx context.Context, userId uuid.UUID) (model.Profile, bool, error) {
	query := "SELECT id, user_id, bucket, object_key, create_datetime, update_datetime FROM profiles WHERE user_id=$1 LIMIT 1"

	profile := model.Profile{}
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&profile.Id, &profile.UserId, &profile.Bucket, &profile.ObjectKey, &profile.CreateDatetime, &profile.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, false, nil
		}
		return profile, false, err
	}

	return profile, true, nil
}

// GetProfileForUpdate locks the user's profile row inside a transaction.
func (repository *ProfileRepository) GetProfileForUpdate(ctx context.Context, tx pgx.Tx, userId uuid.UUID) (model.Profile, bool, error) {
	query := "SELECT id, user_id, bucket, object_key, create_datetime, update_datetime FROM profiles WHERE user_id=$1 FOR UPDATE"

	profile := model.Profile{}
	err := tx.QueryRow(ctx, query, userId).Scan(&profile.Id, &profile.UserId, &profile.Bucket, &profile.ObjectKey, &profile.CreateDatetime, &profile.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, false, nil
		}
		return profile, false, err
	}

	return profile, true, nil
}

// UpsertProfile creates the profile lazily on first write, the unique
// constraint on user_id guarantees at most one row per user.
func (repository *ProfileRepository) UpsertProfile(ctx context.Context, tx pgx.Tx, profile model.Profile) error {
	query := `INSERT INTO profiles (id, user_id, bucket, object_key, create_datetime, update_datetime)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			bucket = EXCLUDED.bucket,
			object_key = EXCLUDED.object_key,
			update_datetime = EXCLUDED.update_datetime`

	_, err := tx.Exec(ctx, query, profile.Id, profile.UserId, profile.Bucket, profile.ObjectKey, profile.CreateDatetime, profile.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

// MinIO - object storage
func (repository *ProfileRepository) UploadPhotoObject(ctx context.Context, bucketName string, objectKey string, file io.Reader, size int64, contentType string) error {
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

func (repository *ProfileRepository) RemovePhotoObject(ctx context.Context, bucketName string, objectKey string) error {
	err := repository.DBObject.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return err
	}

	return nil
}
