package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/rs/zerolog"
)

// ConnectionController handles peer connections
type ConnectionController struct {
	connectionService services.ConnectionService
	logger            zerolog.Logger
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService services.ConnectionService, logger zerolog.Logger) *ConnectionController {
	return &ConnectionController{
		connectionService: connectionService,
		logger:            logger,
	}
}

// Create sends a connection request
// @Summary Request a connection
// @Description Creates a pending connection. Any existing connection between the pair, in either direction and of any status, blocks the request.
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConnectionRequest true "Target user"
// @Success 201 {object} dto.APIResponse{data=dto.ConnectionResponse}
// @Failure 400 {object} dto.ErrorResponse "Self connection or inactive target"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Connection already exists"
// @Router /connections [post]
func (c *ConnectionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateConnectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	conn, err := c.connectionService.Create(ctx.Request.Context(), userID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewConnectionResponse(conn, userID), "Connection request sent"))
}

// List returns incoming requests and accepted connections
// @Summary List connections
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionListResponse}
// @Router /connections [get]
func (c *ConnectionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	conns, err := c.connectionService.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewConnectionListResponse(conns, userID), ""))
}

// Visible returns the role-conditioned connection list
// @Summary Role-conditioned connections
// @Description Mentors see connected mentees, mentees see connected mentors, everyone else sees all accepted connections.
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VisibleConnectionsResponse}
// @Router /connections/visible [get]
func (c *ConnectionController) Visible(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	visible, err := c.connectionService.Visible(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewVisibleConnectionsResponse(visible), ""))
}

// Available returns connect candidates
// @Summary Users available to connect with
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AvailableUserResponse}
// @Router /connections/available [get]
func (c *ConnectionController) Available(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	users, err := c.connectionService.Available(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAvailableUserResponses(users), ""))
}

// Respond accepts or declines a connection request
// @Summary Answer a connection request
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Connection ID"
// @Param request body dto.RespondRequest true "Answer"
// @Success 200 {object} dto.APIResponse{data=dto.ConnectionResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the addressee can respond"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Failure 409 {object} dto.ErrorResponse "Already answered"
// @Router /connections/{id} [patch]
func (c *ConnectionController) Respond(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	status, ok := bindAnswer(ctx)
	if !ok {
		return
	}

	conn, err := c.connectionService.Respond(ctx.Request.Context(), userID, ctx.Param("id"), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewConnectionResponse(conn, userID), "Connection "+status.String()))
}
