package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	jwtauth "github.com/yigit/growthpath/internal/pkg/auth"
)

func newService() *AuthorizationService {
	return NewAuthorizationService(jwtauth.NewJWTService(jwtauth.JWTConfig{SecretKey: "s", AdminRole: "admin"}))
}

func TestPrincipalFromClaims(t *testing.T) {
	s := newService()
	claims := &jwtauth.Claims{
		Email:            "a@b.c",
		AppMetadata:      jwtauth.AppMetadata{Role: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}
	p := s.PrincipalFromClaims(claims)
	assert.Equal(t, Principal{UserID: "u1", Email: "a@b.c", Role: "admin", Admin: true}, p)
}

func TestValidateAdminAndSelf(t *testing.T) {
	s := newService()
	student := Principal{UserID: "u1", Role: "student"}
	admin := Principal{UserID: "a1", Role: "admin", Admin: true}

	assert.ErrorIs(t, s.ValidateAdmin(student), apperrors.ErrPermissionDenied)
	assert.NoError(t, s.ValidateAdmin(admin))

	assert.NoError(t, s.ValidateSelfOrAdmin(student, "u1"))
	assert.ErrorIs(t, s.ValidateSelfOrAdmin(student, "u2"), apperrors.ErrPermissionDenied)
	assert.NoError(t, s.ValidateSelfOrAdmin(admin, "u2"))
}

func TestSetAndGetPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	SetPrincipal(c, Principal{UserID: "u1", Role: "student"})
	p, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "u1", c.GetString(ContextUserID))

	_, ok = PrincipalFrom(context.Background())
	assert.False(t, ok)
}
