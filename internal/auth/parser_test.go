package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("test-secret")

	claims, err := parser.Parse(signToken(t, "test-secret", "device-42"))
	require.NoError(t, err)
	assert.Equal(t, "device-42", claims.Subject)
}

func TestParseWrongSecret(t *testing.T) {
	parser := NewParser("test-secret")

	_, err := parser.Parse(signToken(t, "other-secret", "device-42"))
	assert.Error(t, err)
}

func TestParseMissingSubject(t *testing.T) {
	parser := NewParser("test-secret")

	_, err := parser.Parse(signToken(t, "test-secret", ""))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	parser := NewParser("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "device-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = parser.Parse(signed)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	parser := NewParser("test-secret")

	_, err := parser.Parse("not-a-token")
	assert.Error(t, err)
}
