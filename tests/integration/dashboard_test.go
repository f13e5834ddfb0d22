package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/daniswara/sitepanel/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

// TestDashboard covers the default page, the explicit page filter and the
// "all" listing.
func TestDashboard(t *testing.T) {
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

	t.Log("=== Seeding Banners on Two Pages ===")
	for _, page := range []string{"home", "contact"} {
		fields := map[string]string{"heading": "Heading for " + page}
		body, contentType := setup.CreateMultipartForm(t, fields, "", "", nil)
		req := setup.CreateAuthMultipartRequest(http.MethodPut, "/api/banners/"+page, body, contentType, token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
	}

	t.Log("=== Dashboard Defaults to Home ===")
	req := setup.CreateAuthRequest(http.MethodGet, "/api/dashboard", nil, token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data := setup.ParseJSONObject(t, resp)
	require.Equal(t, "home", data["page"])

	banners, ok := data["banners"].([]interface{})
	require.True(t, ok)
	require.Len(t, banners, 1)

	profile, ok := data["profile"].(map[string]interface{})
	require.True(t, ok, "dashboard should include the caller's profile")
	require.Equal(t, setup.AdminUsername, profile["username"])

	t.Log("=== Dashboard With page=all ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/dashboard?page=all", nil, token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	data = setup.ParseJSONObject(t, resp)
	require.Equal(t, "all", data["page"])

	banners, ok = data["banners"].([]interface{})
	require.True(t, ok)
	require.Len(t, banners, 2)

	t.Log("=== Dashboard With Unknown Page ===")
	req = setup.CreateAuthRequest(http.MethodGet, "/api/dashboard?page=pricing", nil, token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	errResp := setup.ParseErrorResponse(t, resp)
	require.Equal(t, "VALIDATION_ERROR", errResp.Code)
}
