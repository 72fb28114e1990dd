package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", TokenIssuer: "growthpath-test"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()
	id := uuid.NewString()

	token, err := svc.GenerateToken(id, "kid@example.com", RoleStudent)
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID())
	assert.Equal(t, RoleStudent, claims.EffectiveRole())
	assert.False(t, svc.IsAdmin(claims))
}

func TestAdminRoleFromAppMetadata(t *testing.T) {
	svc := newService()
	token, err := svc.GenerateToken(uuid.NewString(), "", RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, svc.IsAdmin(claims))
}

func TestValidateRejectsWrongSecretAndIssuer(t *testing.T) {
	token, err := NewJWTService(JWTConfig{SecretKey: "other", TokenIssuer: "growthpath-test"}).
		GenerateToken(uuid.NewString(), "", RoleStudent)
	require.NoError(t, err)
	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err = NewJWTService(JWTConfig{SecretKey: "test-secret", TokenIssuer: "elsewhere"}).
		GenerateToken(uuid.NewString(), "", RoleStudent)
	require.NoError(t, err)
	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "growthpath-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService().ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractRequiresUUIDSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "42", Issuer: "growthpath-test"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newService().ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = newService().GenerateToken("42", "", RoleStudent)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	tok, err = ExtractBearerToken("abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = ExtractBearerToken("  ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
