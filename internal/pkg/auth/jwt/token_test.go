package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sehra/internal/app/user"
)

const testSecret = "token-test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		UserID: 42,
		Email:  "chetna@sehra.in",
		Role:   user.RoleClient,
	}

	tokenString, err := GenerateToken(payload, testSecret, SessionExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := ParseToken(tokenString, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(42), parsed.UserID)
	require.Equal(t, "chetna@sehra.in", parsed.Email)
	require.Equal(t, user.RoleClient, parsed.Role)
	require.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{UserID: 1}, testSecret, SessionExpiration)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, "a-different-secret")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{UserID: 1}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	require.Error(t, err)
}
