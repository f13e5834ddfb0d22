package util

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/stretchr/testify/require"
)

func TestFileExt(t *testing.T) {
	testCases := []struct {
		filename string
		expected string
	}{
		{"promo.mp4", "mp4"},
		{"PHOTO.JPG", "jpg"},
		{"archive.tar.gz", "gz"},
		{"noextension", ""},
		{"trailingdot.", ""},
		{"banner.WebM", "webm"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, FileExt(tc.filename), "filename %q", tc.filename)
	}
}

func TestContentTypeForExt(t *testing.T) {
	require.Equal(t, "video/mp4", ContentTypeForExt("mp4"))
	require.Equal(t, "image/jpeg", ContentTypeForExt("jpg"))
	require.Equal(t, "application/octet-stream", ContentTypeForExt("exe"))
	require.Equal(t, "application/octet-stream", ContentTypeForExt(""))
}

func TestValidateBannerFile(t *testing.T) {
	testCases := []struct {
		name         string
		filename     string
		bannerType   string
		expectedCode string
	}{
		{"mp4 for video", "clip.mp4", model.BannerTypeVideo, ""},
		{"webm for video", "clip.webm", model.BannerTypeVideo, ""},
		{"jpg for image", "photo.jpg", model.BannerTypeImage, ""},
		{"webp for image", "photo.webp", model.BannerTypeImage, ""},
		{"executable for video", "clip.exe", model.BannerTypeVideo, constant.ERR_TYPE_MISMATCH_CODE},
		{"image for video", "photo.jpg", model.BannerTypeVideo, constant.ERR_TYPE_MISMATCH_CODE},
		{"video for image", "clip.mp4", model.BannerTypeImage, constant.ERR_TYPE_MISMATCH_CODE},
		{"missing extension", "clip", model.BannerTypeVideo, constant.ERR_TYPE_MISMATCH_CODE},
		{"uppercase extension accepted", "CLIP.MP4", model.BannerTypeVideo, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fileHeader := &multipart.FileHeader{Filename: tc.filename, Size: 1024}

			err := ValidateBannerFile(fileHeader, tc.bannerType, "banner_file")
			if tc.expectedCode == "" {
				require.NoError(t, err)
				return
			}

			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, tc.expectedCode, validationErr.Code)
			require.Equal(t, "banner_file", validationErr.Param)
		})
	}
}

func TestValidateBannerFileSizeLimit(t *testing.T) {
	fileHeader := &multipart.FileHeader{Filename: "clip.mp4", Size: constant.MAX_FILE_SIZE + 1}

	err := ValidateBannerFile(fileHeader, model.BannerTypeVideo, "banner_file")

	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, constant.ERR_VALIDATION_CODE, validationErr.Code)
}
