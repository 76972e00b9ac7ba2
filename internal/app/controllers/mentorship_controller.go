package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MentorshipController handles mentorship requests and rosters
type MentorshipController struct {
	mentorshipService services.MentorshipService
	logger            zerolog.Logger
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService, logger zerolog.Logger) *MentorshipController {
	return &MentorshipController{
		mentorshipService: mentorshipService,
		logger:            logger,
	}
}

// Create files a mentorship request
// @Summary Request mentorship
// @Description A mentee asks an active mentor for mentorship. One request per pair, whatever its status.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipRequest true "Mentor and optional message"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Target is not an available mentor"
// @Failure 403 {object} dto.ErrorResponse "Only mentees can request mentorship"
// @Failure 409 {object} dto.ErrorResponse "Request already exists"
// @Router /mentorship-requests [post]
func (c *MentorshipController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateMentorshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.mentorshipService.RequestMentorship(ctx.Request.Context(), userID, req.MentorID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewMentorshipRequestResponse(created), "Mentorship request sent"))
}

// Pending returns the caller's inbox of pending requests
// @Summary Pending requests for the mentor
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorshipRequestResponse}
// @Router /mentorship-requests/pending [get]
func (c *MentorshipController) Pending(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	reqs, err := c.mentorshipService.PendingForMentor(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMentorshipRequestResponses(reqs), ""))
}

// Sent returns every request the caller filed
// @Summary Requests sent by the mentee
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorshipRequestResponse}
// @Router /mentorship-requests/sent [get]
func (c *MentorshipController) Sent(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	reqs, err := c.mentorshipService.SentByMentee(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMentorshipRequestResponses(reqs), ""))
}

// Respond accepts or declines a request
// @Summary Answer a mentorship request
// @Description Accepting sends the welcome message to the mentee in the same transaction.
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.RespondRequest true "Answer"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipRequestResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the requested mentor can respond"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Already answered"
// @Failure 500 {object} dto.ErrorResponse "Failed to update mentorship request"
// @Router /mentorship-requests/{id} [patch]
func (c *MentorshipController) Respond(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	status, ok := bindAnswer(ctx)
	if !ok {
		return
	}

	updated, err := c.mentorshipService.Respond(ctx.Request.Context(), userID, ctx.Param("id"), status)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrRequestNotFound, apperrors.ErrUserNotFound,
			apperrors.ErrStaleStatus, apperrors.ErrConflict, apperrors.ErrBadRequest, apperrors.ErrAccountDisabled) {
			c.logger.Error().Err(err).Str("requestID", ctx.Param("id")).Msg("Failed to update mentorship request")
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to update mentorship request"),
			))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewMentorshipRequestResponse(updated), "Request "+status.String()))
}

// Mentees returns the mentor's accepted mentees
// @Summary Accepted mentees
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse}
// @Router /mentorship/mentees [get]
func (c *MentorshipController) Mentees(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	mentees, err := c.mentorshipService.AcceptedMentees(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponses(mentees), ""))
}

// Mentors returns the mentee's accepted mentors
// @Summary Accepted mentors
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse}
// @Router /mentorship/mentors [get]
func (c *MentorshipController) Mentors(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	mentors, err := c.mentorshipService.AcceptedMentors(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponses(mentors), ""))
}
