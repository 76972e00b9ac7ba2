package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/services"
	"github.com/mentorhub/mentorhub/internal/middleware"
	"github.com/mentorhub/mentorhub/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// BlogController handles posts and their interactions
type BlogController struct {
	blogService services.BlogService
	logger      zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService services.BlogService, logger zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// viewerID is empty for anonymous readers
func viewerID(ctx *gin.Context) string {
	userID, _ := middleware.CurrentUserID(ctx)
	return userID
}

// Create publishes or drafts a post
// @Summary Create a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlogPostRequest true "Post"
// @Success 201 {object} dto.APIResponse{data=dto.BlogPostResponse}
// @Router /blog/posts [post]
func (c *BlogController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.BlogPostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.blogService.CreatePost(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewBlogPostResponse(post), "Post created"))
}

// List pages through visible posts, newest first
// @Summary List posts
// @Description Published posts plus the caller's own drafts.
// @Tags blog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param author query string false "Author ID"
// @Param category query string false "Category"
// @Success 200 {object} dto.APIResponse{data=dto.BlogPostListResponse}
// @Router /blog/posts [get]
func (c *BlogController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, total, err := c.blogService.ListPosts(ctx.Request.Context(), models.PostListFilter{
		ViewerID: viewerID(ctx),
		AuthorID: ctx.Query("author"),
		Category: ctx.Query("category"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.BlogPostListResponse{
		Posts:      dto.NewBlogPostResponses(posts),
		Pagination: helpers.NewPaginationInfo(total, page, int(limit)),
	}, ""))
}

// Get returns one post
// @Summary Get a post
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.BlogPostResponse}
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blog/posts/{id} [get]
func (c *BlogController) Get(ctx *gin.Context) {
	post, err := c.blogService.GetPost(ctx.Request.Context(), viewerID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewBlogPostResponse(post), ""))
}

// Update replaces a post
// @Summary Update a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.BlogPostRequest true "Post"
// @Success 200 {object} dto.APIResponse{data=dto.BlogPostResponse}
// @Failure 403 {object} dto.ErrorResponse "Only the author or an admin"
// @Router /blog/posts/{id} [put]
func (c *BlogController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.BlogPostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.blogService.UpdatePost(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewBlogPostResponse(post), "Post updated"))
}

// Delete removes a post and its ledger
// @Summary Delete a post
// @Tags blog
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Only the author or an admin"
// @Router /blog/posts/{id} [delete]
func (c *BlogController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.blogService.DeletePost(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Like toggles the caller's like
// @Summary Toggle like
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostStatsResponse}
// @Router /blog/posts/{id}/like [post]
func (c *BlogController) Like(ctx *gin.Context) {
	c.toggle(ctx, c.blogService.ToggleLike)
}

// Recommend toggles the caller's recommendation
// @Summary Toggle recommendation
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostStatsResponse}
// @Router /blog/posts/{id}/recommend [post]
func (c *BlogController) Recommend(ctx *gin.Context) {
	c.toggle(ctx, c.blogService.ToggleRecommend)
}

func (c *BlogController) toggle(ctx *gin.Context, fn func(context.Context, string, string) (*models.PostStats, error)) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	stats, err := fn(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostStatsResponse(stats), ""))
}

// View records a view, anonymous or not
// @Summary Record a view
// @Tags blog
// @Param id path string true "Post ID"
// @Success 204 "No Content"
// @Router /blog/posts/{id}/view [post]
func (c *BlogController) View(ctx *gin.Context) {
	if err := c.blogService.RecordView(ctx.Request.Context(), viewerID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Comment adds a comment
// @Summary Comment on a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Router /blog/posts/{id}/comments [post]
func (c *BlogController) Comment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.blogService.Comment(ctx.Request.Context(), userID, ctx.Param("id"), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCommentResponses([]*models.BlogInteraction{comment})[0], ""))
}

// Comments lists comments oldest first
// @Summary List comments
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse}
// @Router /blog/posts/{id}/comments [get]
func (c *BlogController) Comments(ctx *gin.Context) {
	comments, err := c.blogService.Comments(ctx.Request.Context(), viewerID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCommentResponses(comments), ""))
}

// Stats returns the derived counters
// @Summary Post stats
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostStatsResponse}
// @Router /blog/posts/{id}/stats [get]
func (c *BlogController) Stats(ctx *gin.Context) {
	stats, err := c.blogService.Stats(ctx.Request.Context(), viewerID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPostStatsResponse(stats), ""))
}
