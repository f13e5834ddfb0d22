package model

import (
	"mime/multipart"
	"time"
)

const (
	PageHome      = "home"
	PageAbout     = "about"
	PageContact   = "contact"
	PagePackage   = "package"
	PageFranchise = "franchise"

	// PageAll is a dashboard-only key for the administrative listing,
	// never stored on a banner row.
	PageAll = "all"
)

const (
	BannerTypeImage = "image"
	BannerTypeVideo = "video"
)

var Pages = []string{PageHome, PageAbout, PageContact, PagePackage, PageFranchise}

var pageSet = map[string]bool{
	PageHome:      true,
	PageAbout:     true,
	PageContact:   true,
	PagePackage:   true,
	PageFranchise: true,
}

func IsValidPage(page string) bool {
	return pageSet[page]
}

func IsValidBannerType(bannerType string) bool {
	return bannerType == BannerTypeImage || bannerType == BannerTypeVideo
}

// Banner is the per-page promotional media unit. page is the natural key,
// at most one row per page. A banner may exist with text only; object_key
// is set once a file has been uploaded.
type Banner struct {
	Page        string
	BannerType  *string
	Heading     *string
	Description *string
	Bucket      *string
	ObjectKey   *string
	UpdatedAt   time.Time
}

// BannerUpdateRequest carries only the fields the client actually submitted.
// A nil pointer means the field was absent from the form, not empty.
type BannerUpdateRequest struct {
	Heading     *string
	Description *string
	BannerType  *string
	File        *multipart.FileHeader
}

func (r BannerUpdateRequest) Empty() bool {
	return r.Heading == nil && r.Description == nil && r.BannerType == nil && r.File == nil
}

type BannerResponse struct {
	Page        string    `json:"page"`
	BannerType  *string   `json:"bannerType"`
	Heading     *string   `json:"heading"`
	Description *string   `json:"description"`
	BannerFile  *string   `json:"bannerFile"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BannerUpdateResponse struct {
	Page          string   `json:"page"`
	ChangedFields []string `json:"changedFields"`
	Message       string   `json:"message"`
}

type DashboardResponse struct {
	Page    string           `json:"page"`
	Banners []BannerResponse `json:"banners"`
	Profile *ProfileResponse `json:"profile"`
}
