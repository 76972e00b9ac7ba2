// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/middleware"
)

// requireUserID returns the authenticated caller or writes a 401
func requireUserID(ctx *gin.Context) (string, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("User information not found")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return userID, true
}

// bindAnswer reads a RespondRequest body and parses its status
func bindAnswer(ctx *gin.Context) (domain.RelationshipStatus, bool) {
	var req dto.RespondRequest
	if !middleware.BindJSON(ctx, &req) {
		return "", false
	}
	status, err := domain.ParseRelationshipStatus(req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", false
	}
	return status, true
}
