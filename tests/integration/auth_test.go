package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/daniswara/sitepanel/tests/integration/setup"
	"github.com/stretchr/testify/require"
)

// TestHealthCheck tests the health check endpoint
func TestHealthCheck(t *testing.T) {
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

	app, _, _, _ := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL, infra.MinioURL)

	req := setup.CreateJSONRequest(http.MethodGet, "/api/health", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

// TestLoginAndLogout runs the whole auth loop: login, authenticated read,
// logout, and the token being dead afterwards.
func TestLoginAndLogout(t *testing.T) {
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

	t.Log("=== Authenticated /users/me ===")
	meReq := setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, token)

	meResp, err := app.Test(meReq)
	require.NoError(t, err)
	require.Equal(t, 200, meResp.StatusCode)

	meData := setup.ParseJSONObject(t, meResp)
	require.Equal(t, setup.AdminUsername, meData["username"])
	require.Equal(t, true, meData["isSuperuser"])

	t.Log("=== Logout ===")
	logoutReq := setup.CreateAuthRequest(http.MethodPost, "/api/users/logout", nil, token)

	logoutResp, err := app.Test(logoutReq)
	require.NoError(t, err)
	require.Equal(t, 200, logoutResp.StatusCode)

	t.Log("=== Token Must Be Revoked ===")
	meReq = setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, token)

	meResp, err = app.Test(meReq)
	require.NoError(t, err)
	require.Equal(t, 401, meResp.StatusCode)
}

// TestLoginValidation covers bad credentials and missing fields.
func TestLoginValidation(t *testing.T) {
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

	testCases := []struct {
		name          string
		body          string
		expectedParam string
	}{
		{
			name:          "missing username",
			body:          `{"password":"whatever"}`,
			expectedParam: "username",
		},
		{
			name:          "missing password",
			body:          `{"username":"admin"}`,
			expectedParam: "password",
		},
		{
			name:          "unknown username",
			body:          `{"username":"nobody","password":"whatever"}`,
			expectedParam: "username",
		},
		{
			name:          "wrong password",
			body:          `{"username":"admin","password":"not-the-password"}`,
			expectedParam: "password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", []byte(tc.body))

			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, 400, resp.StatusCode)

			errResp := setup.ParseErrorResponse(t, resp)
			require.Equal(t, "VALIDATION_ERROR", errResp.Code)
			require.Equal(t, tc.expectedParam, errResp.Param)
		})
	}
}
