package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", time.Hour)

	// Act
	token, err := jwtManager.GenerateToken("65f1c0ffee0000000000a001", "owner@goaguide.in", "owner")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee0000000000a001", claims.UserID)
	assert.Equal(t, "owner@goaguide.in", claims.Email)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "65f1c0ffee0000000000a001", claims.Subject)
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	jwtManager := NewJWTManager("test-secret-key", -time.Minute)

	token, err := jwtManager.GenerateToken("u1", "user@goaguide.in", "user")
	require.NoError(t, err)

	claims, err := jwtManager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateToken("u1", "user@goaguide.in", "user")
	require.NoError(t, err)

	claims, err := NewJWTManager("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_Malformed(t *testing.T) {
	claims, err := NewJWTManager("test-secret-key", time.Hour).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_UnexpectedSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: "u1", Role: "admin"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("test-secret-key", time.Hour).ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_TokenDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, NewJWTManager("k", 2*time.Hour).TokenDuration())
}
