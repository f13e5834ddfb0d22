package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TruncateAllTables truncates all tables in correct order (children first, then parents)
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	t.Log("Truncating all database tables...")

	tables := []string{
		"banners",
		"profiles",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	t.Log("All database tables truncated successfully")
}

// CreateRegularUser inserts a non-superuser account straight into the
// database, there is no public signup endpoint.
func CreateRegularUser(t *testing.T, db *pgxpool.Pool, ctx context.Context, username, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err, "failed to hash test password")

	now := time.Now().UTC()
	query := "INSERT INTO users (id, username, password, is_superuser, create_datetime, update_datetime) VALUES ($1,$2,$3,$4,$5,$6)"
	_, err = db.Exec(ctx, query, uuid.New(), username, string(passwordHash), false, now, now)
	require.NoError(t, err, "failed to insert regular user")
}

// CreateTestMP4Video returns a few bytes with an MP4 ftyp box header, enough
// for an upload payload.
func CreateTestMP4Video(t *testing.T) []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x18,
		0x66, 0x74, 0x79, 0x70, // "ftyp"
		0x69, 0x73, 0x6F, 0x6D, // "isom"
		0x00, 0x00, 0x02, 0x00,
		0x69, 0x73, 0x6F, 0x6D,
		0x6D, 0x70, 0x34, 0x31,
	}
}

// CreateTestJPEGImage returns a minimal JPEG payload (SOI + EOI markers).
func CreateTestJPEGImage(t *testing.T) []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0xFF, 0xD9}
}

// CreateMultipartForm builds a multipart body from text fields plus an
// optional file. Pass fileData nil to send a form without a file part.
func CreateMultipartForm(t *testing.T, fields map[string]string, fileField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		err := writer.WriteField(key, value)
		require.NoError(t, err, "failed to write form field %s", key)
	}

	if fileData != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err, "failed to create form file field")

		_, err = part.Write(fileData)
		require.NoError(t, err, "failed to write file data")
	}

	err := writer.Close()
	require.NoError(t, err, "failed to close multipart writer")

	contentType := writer.FormDataContentType()
	return body, contentType
}

// CreateJSONRequest creates a test request with JSON body
func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthRequest creates a test request with JSON body and Authorization header
func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

// CreateAuthMultipartRequest creates a test request with multipart body and Authorization header
func CreateAuthMultipartRequest(method, url string, body *bytes.Buffer, contentType string, token string) *http.Request {
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ParseJSONObject parses a response body into a generic map. Success
// responses are plain top-level objects, there is no envelope.
func ParseJSONObject(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response")

	return result
}

// ParseJSONArray parses a response body into a generic array (list endpoints).
func ParseJSONArray(t *testing.T, resp *http.Response) []interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result []interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response")

	return result
}

// ParseErrorResponse extracts the error object from an error response body.
func ParseErrorResponse(t *testing.T, resp *http.Response) ErrorResponse {
	result := ParseJSONObject(t, resp)
	require.Contains(t, result, "error", "response should contain error field")

	errObj, ok := result["error"].(map[string]interface{})
	require.True(t, ok, "error field should be an object")

	errResp := ErrorResponse{}
	if code, ok := errObj["code"].(string); ok {
		errResp.Code = code
	}
	if message, ok := errObj["message"].(string); ok {
		errResp.Message = message
	}
	if param, ok := errObj["param"].(string); ok {
		errResp.Param = param
	}

	return errResp
}

// Login performs a login request and returns the access token.
func Login(t *testing.T, app AppTester, username, password string) string {
	reqBody := []byte(fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	req := CreateJSONRequest(http.MethodPost, "/api/auth/login", reqBody)

	resp, err := app.Test(req)
	require.NoError(t, err, "login request should succeed")
	require.Equal(t, 200, resp.StatusCode, "login should return 200")

	result := ParseJSONObject(t, resp)

	accessToken, ok := result["accessToken"].(string)
	require.True(t, ok, "accessToken should be a string")
	require.NotEmpty(t, accessToken, "accessToken should not be empty")

	return accessToken
}

// LoginAsAdmin logs in with the seeded superuser account.
func LoginAsAdmin(t *testing.T, app AppTester) string {
	return Login(t, app, AdminUsername, AdminPassword)
}

// AppTester is the slice of *fiber.App the helpers need.
type AppTester interface {
	Test(req *http.Request, msTimeout ...int) (*http.Response, error)
}
