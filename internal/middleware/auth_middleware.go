package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService   *auth.JWTService
	authzService *appAuth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authzService *appAuth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		authzService: authzService,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// bearerToken reads the token from the Authorization header, falling back to ?token=
// since browsers cannot set headers on a websocket upgrade.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		authHeader = c.Query("token")
	}
	if authHeader == "" {
		return "", errMissingToken
	}
	return auth.ExtractBearerToken(strings.Trim(authHeader, "\"'"))
}

var errMissingToken = errors.New("authorization header missing")

func (m *AuthMiddleware) setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			if errors.Is(err, errMissingToken) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		m.setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth identifies the caller when a valid token is present and lets
// anonymous requests through otherwise
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := bearerToken(c); err == nil {
			if claims, err := m.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
				m.setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// ActiveProfileRequired rejects callers whose profile was deactivated after their token was issued
func (m *AuthMiddleware) ActiveProfileRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}

		if _, err := m.authzService.RequireActiveProfile(c.Request.Context(), userID); err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Profile not found")
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
