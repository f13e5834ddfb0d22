package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPage(t *testing.T) {
	for _, page := range Pages {
		require.True(t, IsValidPage(page), "page %s should be valid", page)
	}

	require.False(t, IsValidPage("pricing"))
	require.False(t, IsValidPage(""))
	require.False(t, IsValidPage("Home"), "page matching is case sensitive")
	require.False(t, IsValidPage(PageAll), "the dashboard listing key is not a storable page")
}

func TestIsValidBannerType(t *testing.T) {
	require.True(t, IsValidBannerType(BannerTypeImage))
	require.True(t, IsValidBannerType(BannerTypeVideo))
	require.False(t, IsValidBannerType("audio"))
	require.False(t, IsValidBannerType(""))
}

func TestBannerUpdateRequestEmpty(t *testing.T) {
	require.True(t, BannerUpdateRequest{}.Empty())

	empty := ""
	require.False(t, BannerUpdateRequest{Heading: &empty}.Empty(),
		"a supplied empty string still counts as a change")
}
