// Package auth carries the authenticated caller through a request and
// answers the access questions controllers ask.
package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yigit/growthpath/internal/pkg/apperrors"
	jwtauth "github.com/yigit/growthpath/internal/pkg/auth"
)

// Context keys set by the JWT middleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextAdmin  = "isAdmin"
)

// Principal is the caller of a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
	Admin  bool
}

type principalKey struct{}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	jwtService *jwtauth.JWTService
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(jwtService *jwtauth.JWTService) *AuthorizationService {
	return &AuthorizationService{jwtService: jwtService}
}

// PrincipalFromClaims builds the caller from validated token claims.
func (s *AuthorizationService) PrincipalFromClaims(claims *jwtauth.Claims) Principal {
	return Principal{
		UserID: claims.UserID(),
		Email:  claims.Email,
		Role:   claims.EffectiveRole(),
		Admin:  s.jwtService.IsAdmin(claims),
	}
}

// ValidateAdmin returns ErrPermissionDenied unless p is an admin.
func (s *AuthorizationService) ValidateAdmin(p Principal) error {
	if !p.Admin {
		return apperrors.NewForbiddenError("admin role required")
	}
	return nil
}

// ValidateSelfOrAdmin allows a user to act on their own records and an admin
// on anyone's.
func (s *AuthorizationService) ValidateSelfOrAdmin(p Principal, userID string) error {
	if p.Admin || (p.UserID != "" && p.UserID == userID) {
		return nil
	}
	return apperrors.NewForbiddenError("access to another user's records is not allowed")
}

// SetPrincipal stores p on the gin context and the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(ContextUserID, p.UserID)
	c.Set(ContextEmail, p.Email)
	c.Set(ContextRole, p.Role)
	c.Set(ContextAdmin, p.Admin)
	c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
}

// GetPrincipal returns the caller set by the JWT middleware.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	return PrincipalFrom(c.Request.Context())
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != ""
}
