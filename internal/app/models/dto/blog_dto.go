package dto

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/app/models"
)

// BlogPostRequest creates or replaces a post
type BlogPostRequest struct {
	Title      string   `json:"title" binding:"required,max=300"`
	Content    string   `json:"content" binding:"required"`
	Categories []string `json:"categories" binding:"omitempty,max=20,dive,max=50"`
	Status     string   `json:"status" binding:"omitempty,poststatus" enums:"draft,published"`
}

// CommentRequest adds a comment to a post
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// BlogPostResponse represents a post
type BlogPostResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"categories"`
	Status     string    `json:"status"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BlogPostListResponse is a page of posts
type BlogPostListResponse struct {
	Posts      []*BlogPostResponse `json:"posts"`
	Pagination PaginationInfo      `json:"pagination"`
}

// PostStatsResponse drives the interaction bar
type PostStatsResponse struct {
	LikesCount           int  `json:"likesCount"`
	RecommendationsCount int  `json:"recommendationsCount"`
	CommentsCount        int  `json:"commentsCount"`
	ViewsCount           int  `json:"viewsCount"`
	LikedByMe            bool `json:"likedByMe"`
	RecommendedByMe      bool `json:"recommendedByMe"`
}

// CommentResponse is one comment with its author
type CommentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewBlogPostResponse(p *models.BlogPost) *BlogPostResponse {
	return &BlogPostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Categories: p.CategoryList(),
		Status:     string(p.Status),
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func NewBlogPostResponses(posts []*models.BlogPost) []*BlogPostResponse {
	out := make([]*BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewBlogPostResponse(p))
	}
	return out
}

func NewPostStatsResponse(s *models.PostStats) *PostStatsResponse {
	return &PostStatsResponse{
		LikesCount:           s.Likes,
		RecommendationsCount: s.Recommendations,
		CommentsCount:        s.Comments,
		ViewsCount:           s.Views,
		LikedByMe:            s.LikedByMe,
		RecommendedByMe:      s.RecommendedByMe,
	}
}

func NewCommentResponses(comments []*models.BlogInteraction) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp := &CommentResponse{
			ID:         c.ID,
			AuthorName: c.AuthorName,
			CreatedAt:  c.CreatedAt,
		}
		if c.UserID != nil {
			resp.UserID = *c.UserID
		}
		if c.Content != nil {
			resp.Content = *c.Content
		}
		out = append(out, resp)
	}
	return out
}
