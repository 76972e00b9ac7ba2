package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
)

// DashboardController serves the role-selected landing view
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Get returns the caller's dashboard
// @Summary Dashboard
// @Description Admins get users and stats, mentors get mentees, own events and pending requests, everyone else gets the mentee view.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.ForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewDashboardResponse(dashboard), ""))
}
