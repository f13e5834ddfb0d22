package usecase

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 1024}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected a validation error, got %v", err)
	require.Equal(t, code, validationErr.Code)
}

func TestValidateBannerUpdateOrder(t *testing.T) {
	t.Run("unknown page wins over everything", func(t *testing.T) {
		payload := model.BannerUpdateRequest{File: fileHeader("clip.exe")}
		requireCode(t, validateBannerUpdate("pricing", payload), constant.ERR_VALIDATION_CODE)
	})

	t.Run("empty form", func(t *testing.T) {
		requireCode(t, validateBannerUpdate("home", model.BannerUpdateRequest{}), constant.ERR_NO_CHANGE_SUPPLIED_CODE)
	})

	t.Run("file without type beats the extension check", func(t *testing.T) {
		payload := model.BannerUpdateRequest{File: fileHeader("clip.exe")}
		requireCode(t, validateBannerUpdate("home", payload), constant.ERR_MISSING_TYPE_FOR_FILE_CODE)
	})

	t.Run("invalid type beats missing-type and mismatch", func(t *testing.T) {
		payload := model.BannerUpdateRequest{
			BannerType: strPtr("audio"),
			File:       fileHeader("clip.exe"),
		}
		requireCode(t, validateBannerUpdate("home", payload), constant.ERR_VALIDATION_CODE)
	})

	t.Run("extension mismatch comes last", func(t *testing.T) {
		payload := model.BannerUpdateRequest{
			BannerType: strPtr(model.BannerTypeVideo),
			File:       fileHeader("clip.exe"),
		}
		requireCode(t, validateBannerUpdate("home", payload), constant.ERR_TYPE_MISMATCH_CODE)
	})
}

func TestValidateBannerUpdateAccepts(t *testing.T) {
	testCases := []struct {
		name    string
		payload model.BannerUpdateRequest
	}{
		{
			name:    "heading only",
			payload: model.BannerUpdateRequest{Heading: strPtr("Welcome")},
		},
		{
			name:    "empty string clears a field",
			payload: model.BannerUpdateRequest{Description: strPtr("")},
		},
		{
			name:    "type without file",
			payload: model.BannerUpdateRequest{BannerType: strPtr(model.BannerTypeImage)},
		},
		{
			name: "video file with matching type",
			payload: model.BannerUpdateRequest{
				BannerType: strPtr(model.BannerTypeVideo),
				File:       fileHeader("promo.mp4"),
			},
		},
		{
			name: "image file with matching type",
			payload: model.BannerUpdateRequest{
				BannerType: strPtr(model.BannerTypeImage),
				File:       fileHeader("hero.webp"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, validateBannerUpdate("home", tc.payload))
		})
	}
}
