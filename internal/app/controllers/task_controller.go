package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/rs/zerolog"
)

// TaskController handles mentor-assigned tasks
type TaskController struct {
	taskService services.TaskService
	logger      zerolog.Logger
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService services.TaskService, logger zerolog.Logger) *TaskController {
	return &TaskController{
		taskService: taskService,
		logger:      logger,
	}
}

// Create assigns a task
// @Summary Assign a task
// @Description Mentors assign tasks to their accepted mentees. Admins may assign to anyone.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.APIResponse{data=dto.TaskResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the assignee's mentor"
// @Router /tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	task, err := c.taskService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewTaskResponse(task), "Task assigned"))
}

// Assigned lists tasks assigned to the caller
// @Summary Tasks assigned to me
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TaskResponse}
// @Router /tasks/assigned [get]
func (c *TaskController) Assigned(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	tasks, err := c.taskService.ListAssigned(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewTaskResponses(tasks), ""))
}

// Created lists tasks the caller assigned
// @Summary Tasks I assigned
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TaskResponse}
// @Router /tasks/created [get]
func (c *TaskController) Created(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	tasks, err := c.taskService.ListCreated(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewTaskResponses(tasks), ""))
}

// UpdateStatus moves a task to a new status
// @Summary Update task status
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.TaskResponse}
// @Failure 403 {object} dto.ErrorResponse "Neither assignee nor assigner"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id}/status [patch]
func (c *TaskController) UpdateStatus(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateTaskStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	task, err := c.taskService.UpdateStatus(ctx.Request.Context(), userID, ctx.Param("id"), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewTaskResponse(task), "Task updated"))
}
