package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

type errorMapping struct {
	target   error
	status   int
	code     dto.ErrorCode
	fallback string
}

// Order matters: the first matching target wins.
var errorMappings = []errorMapping{
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrConnectionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Connection not found"},
	{apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Mentorship request not found"},
	{apperrors.ErrTaskNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Task not found"},
	{apperrors.ErrEventNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found"},
	{apperrors.ErrPostNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Blog post not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrConnectionAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Connection already exists"},
	{apperrors.ErrRequestAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Request already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrStaleStatus, http.StatusConflict, dto.ErrorCodeConflict, "This request has already been answered"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			detail := dto.NewErrorDetail(m.code, apperrors.Message(err, m.fallback))
			if m.status >= http.StatusInternalServerError {
				detail.WithSeverity(dto.ErrorSeverityCritical)
			}
			c.JSON(m.status, dto.NewErrorResponse(detail))
			return
		}
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("requestID", c.GetString(ContextRequestID)).
		Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
	))
}

// ErrorHandler renders the last error attached with c.Error when no response was written
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		HandleAPIError(c, c.Errors.Last().Err)
	}
}
