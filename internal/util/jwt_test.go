package util

import (
	"errors"
	"testing"

	"github.com/daniswara/sitepanel/internal/constant"
	"github.com/daniswara/sitepanel/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userId := uuid.New()

	pair, err := GenerateTokenPair(userId, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "Bearer", pair.TokenType)

	token, parsedId, err := ValidateAccessToken(BearerPrefix+pair.AccessToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, pair.AccessToken, token)
	require.Equal(t, userId, parsedId)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	userId := uuid.New()
	pair, err := GenerateTokenPair(userId, testSecret)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing bearer prefix", pair.AccessToken},
		{"empty token", BearerPrefix},
		{"garbage token", BearerPrefix + "not-a-jwt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateAccessToken(tc.header, testSecret)

			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, constant.ERR_UNAUTHORIZED_ERROR, validationErr.Code)
		})
	}
}

func TestValidateAccessTokenWrongKey(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), testSecret)
	require.NoError(t, err)

	_, _, err = ValidateAccessToken(BearerPrefix+pair.AccessToken, "a-different-secret")

	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Equal(t, constant.ERR_UNAUTHORIZED_ERROR, validationErr.Code)
}

func TestHashTokenIsStable(t *testing.T) {
	require.Equal(t, HashToken("abc"), HashToken("abc"))
	require.NotEqual(t, HashToken("abc"), HashToken("abd"))
	require.Len(t, HashToken("abc"), 64)
}
