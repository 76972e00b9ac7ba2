package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/rs/zerolog"
)

// ProfileController handles profile reads, completion and admin changes
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetMe returns the caller's profile
// @Summary Get current profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me [get]
func (c *ProfileController) GetMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetCurrent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), ""))
}

// UpdateMe completes the caller's profile
// @Summary Complete current profile
// @Description Mentors must end up with expertise and years of experience; mentees with goals or interests.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CompleteProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing role-specific fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profiles/me [put]
func (c *ProfileController) UpdateMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.CompleteProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.Complete(ctx.Request.Context(), userID, req.ToUpdate())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), "Profile updated"))
}

// List returns profiles, optionally filtered
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(admin, mentor, mentee)
// @Param active query bool false "Only active profiles"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Router /profiles [get]
func (c *ProfileController) List(ctx *gin.Context) {
	role, err := domain.ParseRole(ctx.Query("role"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("active", "false"))

	profiles, err := c.profileService.List(ctx.Request.Context(), models.ProfileFilter{Role: role, ActiveOnly: activeOnly})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponses(profiles), ""))
}

// GetByID returns one profile
// @Summary Get profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profiles/{id} [get]
func (c *ProfileController) GetByID(ctx *gin.Context) {
	profile, err := c.profileService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), ""))
}

// ChangeRole sets a profile's role
// @Summary Change role (admin)
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body dto.ChangeRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profiles/{id}/role [patch]
func (c *ProfileController) ChangeRole(ctx *gin.Context) {
	adminID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.profileService.ChangeRole(ctx.Request.Context(), adminID, ctx.Param("id"), role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), "Role updated"))
}

// SetActive enables or disables a profile
// @Summary Activate or deactivate (admin)
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body dto.SetActiveRequest true "Activation flag"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profiles/{id}/active [patch]
func (c *ProfileController) SetActive(ctx *gin.Context) {
	adminID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.SetActive(ctx.Request.Context(), adminID, ctx.Param("id"), *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), "Profile updated"))
}
