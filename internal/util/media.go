package util

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
)

// Allowed file extensions per banner type. Classification is done on the
// filename suffix only, the file content itself is stored as-is.
var ImageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}
var VideoExtensions = []string{"mp4", "webm", "mov", "ogg"}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"ogg":  "video/ogg",
}

// FileExt returns the lowercased extension of a filename without the dot.
func FileExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func AllowedExtensions(bannerType string) []string {
	switch bannerType {
	case model.BannerTypeImage:
		return ImageExtensions
	case model.BannerTypeVideo:
		return VideoExtensions
	default:
		return nil
	}
}

// ContentTypeForExt maps a known media extension to its MIME type,
// falling back to an opaque octet stream for anything else.
func ContentTypeForExt(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidateBannerFile checks that an uploaded file's extension belongs to the
// allow-list of the declared banner type.
func ValidateBannerFile(fileHeader *multipart.FileHeader, bannerType string, fieldName string) error {
	if fileHeader.Size > constant.MAX_FILE_SIZE {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("File size exceeded %dMB limit", constant.MAX_FILE_SIZE/(1024*1024)),
			Param:   fieldName,
		}
	}

	ext := FileExt(fileHeader.Filename)
	allowed := AllowedExtensions(bannerType)
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}

	return &model.ValidationError{
		Code:    constant.ERR_TYPE_MISMATCH_CODE,
		Message: fmt.Sprintf("Uploaded file is not a valid %s, expected one of: %s", bannerType, strings.Join(allowed, ", ")),
		Param:   fieldName,
	}
}
