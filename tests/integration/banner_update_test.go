package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/daniswara/sitepanel/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

// TestUpdateBannerWithVideo uploads a video banner and checks it shows up on
// the public page endpoint.
func TestUpdateBannerWithVideo(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	t.Log("=== Running Database Migrations ===")
	err = setup.RunMigration(infra.PgURL, t)
	require.NoError(t, err)

	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, db, ctx)
	})

	token := setup.LoginAsAdmin(t, app)

	t.Log("=== Uploading Video Banner ===")
	fields := map[string]string{
		"banner_type": "video",
		"heading":     "Welcome to our site",
	}
	body, contentType := setup.CreateMultipartForm(t, fields, "banner_file", "promo.mp4", setup.CreateTestMP4Video(t))
	req := setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/home", body, contentType, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data := setup.ParseJSONObject(t, resp)
	require.Equal(t, "home", data["page"])

	changedFields, ok := data["changedFields"].([]interface{})
	require.True(t, ok, "changedFields should be an array")
	require.Contains(t, changedFields, "heading")
	require.Contains(t, changedFields, "banner_type")
	require.Contains(t, changedFields, "banner_file")

	t.Log("=== Reading Public Page ===")
	pageReq := setup.CreateJSONRequest(http.MethodGet, "/api/pages/home", nil)

	pageResp, err := app.Test(pageReq)
	require.NoError(t, err)
	require.Equal(t, 200, pageResp.StatusCode)

	banners := setup.ParseJSONArray(t, pageResp)
	require.Len(t, banners, 1)

	banner, ok := banners[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "home", banner["page"])
	require.Equal(t, "video", banner["bannerType"])
	require.Equal(t, "Welcome to our site", banner["heading"])

	bannerFile, ok := banner["bannerFile"].(string)
	require.True(t, ok, "bannerFile should be a URL")
	require.True(t, strings.HasSuffix(bannerFile, ".mp4"), "stored object should keep the mp4 extension")
	require.Contains(t, bannerFile, "banners/home/")
}

// TestUpdateBannerPartial checks that fields left out of the form keep their
// stored values.
func TestUpdateBannerPartial(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	err = setup.RunMigration(infra.PgURL, t)
	require.NoError(t, err)

	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, db, ctx)
	})

	token := setup.LoginAsAdmin(t, app)

	t.Log("=== Seeding Banner With Heading and Description ===")
	fields := map[string]string{
		"heading":     "Original heading",
		"description": "Original description",
	}
	body, contentType := setup.CreateMultipartForm(t, fields, "", "", nil)
	req := setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/about", body, contentType, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	t.Log("=== Updating Only the Heading ===")
	fields = map[string]string{
		"heading": "New heading",
	}
	body, contentType = setup.CreateMultipartForm(t, fields, "", "", nil)
	req = setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/about", body, contentType, token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data := setup.ParseJSONObject(t, resp)

	changedFields, ok := data["changedFields"].([]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"heading"}, changedFields)

	t.Log("=== Verifying the Description Survived ===")
	pageReq := setup.CreateJSONRequest(http.MethodGet, "/api/pages/about", nil)

	pageResp, err := app.Test(pageReq)
	require.NoError(t, err)
	require.Equal(t, 200, pageResp.StatusCode)

	banners := setup.ParseJSONArray(t, pageResp)
	require.Len(t, banners, 1, "the upsert must keep a single row per page")

	banner, ok := banners[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "New heading", banner["heading"])
	require.Equal(t, "Original description", banner["description"])
}

// TestUpdateBannerValidation walks the rejection cases, none of them may
// write anything.
func TestUpdateBannerValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	err = setup.RunMigration(infra.PgURL, t)
	require.NoError(t, err)

	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, db, ctx)
	})

	token := setup.LoginAsAdmin(t, app)

	testCases := []struct {
		name         string
		page         string
		fields       map[string]string
		fileName     string
		fileData     []byte
		expectedCode string
	}{
		{
			name:         "unknown page",
			page:         "pricing",
			fields:       map[string]string{"heading": "hi"},
			expectedCode: "VALIDATION_ERROR",
		},
		{
			name:         "empty form",
			page:         "home",
			fields:       map[string]string{},
			expectedCode: "NO_CHANGE_SUPPLIED",
		},
		{
			name:         "file without banner type",
			page:         "home",
			fields:       map[string]string{},
			fileName:     "promo.mp4",
			fileData:     setup.CreateTestMP4Video(t),
			expectedCode: "MISSING_TYPE_FOR_FILE",
		},
		{
			name:         "invalid banner type",
			page:         "home",
			fields:       map[string]string{"banner_type": "audio"},
			expectedCode: "VALIDATION_ERROR",
		},
		{
			name:         "executable rejected for video type",
			page:         "home",
			fields:       map[string]string{"banner_type": "video"},
			fileName:     "clip.exe",
			fileData:     []byte("MZ fake executable"),
			expectedCode: "TYPE_MISMATCH",
		},
		{
			name:         "image file rejected for video type",
			page:         "home",
			fields:       map[string]string{"banner_type": "video"},
			fileName:     "photo.jpg",
			fileData:     setup.CreateTestJPEGImage(t),
			expectedCode: "TYPE_MISMATCH",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := setup.CreateMultipartForm(t, tc.fields, "banner_file", tc.fileName, tc.fileData)
			req := setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/"+tc.page, body, contentType, token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, 400, resp.StatusCode)

			errResp := setup.ParseErrorResponse(t, resp)
			require.Equal(t, tc.expectedCode, errResp.Code)
		})
	}

	t.Log("=== Verifying No Banner Row Was Written ===")
	var count int
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM banners").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "rejected updates must not write rows")
}

// TestUpdateBannerAccessControl checks the admin surface is closed to
// anonymous and non-superuser callers.
func TestUpdateBannerAccessControl(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = infra.Terminate(ctx, t)
	})

	err = setup.RunMigration(infra.PgURL, t)
	require.NoError(t, err)

	app, db, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, db, ctx)
	})

	fields := map[string]string{"heading": "hi"}

	t.Log("=== Anonymous Request ===")
	body, contentType := setup.CreateMultipartForm(t, fields, "", "", nil)
	req := setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/home", body, contentType, "")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	t.Log("=== Non-Superuser Request ===")
	setup.CreateRegularUser(t, db, ctx, "editor", "editor-password")
	token := setup.Login(t, app, "editor", "editor-password")

	body, contentType = setup.CreateMultipartForm(t, fields, "", "", nil)
	req = setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/home", body, contentType, token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	errResp := setup.ParseErrorResponse(t, resp)
	require.Equal(t, "FORBIDDEN_ERROR", errResp.Code)
}
