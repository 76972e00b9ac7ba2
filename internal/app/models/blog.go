package models

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// BlogPost is an article. Categories are stored comma-joined.
type BlogPost struct {
	ID         string            `json:"id" db:"id"`
	Title      string            `json:"title" db:"title"`
	Content    string            `json:"content" db:"content"`
	Categories string            `json:"-" db:"categories"`
	Status     domain.PostStatus `json:"status" db:"status"`
	AuthorID   string            `json:"authorId" db:"author_id"`
	AuthorName string            `json:"authorName" db:"-"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}

// CategoryList returns the stored categories as a list.
func (p *BlogPost) CategoryList() []string {
	return domain.SplitCategories(p.Categories)
}

// VisibleTo reports whether viewerID may read the post.
func (p *BlogPost) VisibleTo(viewerID string) bool {
	return p.Status == domain.PostPublished || p.AuthorID == viewerID
}

// BlogInteraction is one row of the interaction ledger. UserID is nil for anonymous views.
type BlogInteraction struct {
	ID         string                 `json:"id" db:"id"`
	PostID     string                 `json:"postId" db:"post_id"`
	UserID     *string                `json:"userId,omitempty" db:"user_id"`
	Type       domain.InteractionType `json:"type" db:"type"`
	Content    *string                `json:"content,omitempty" db:"content"`
	CreatedAt  time.Time              `json:"createdAt" db:"created_at"`
	AuthorName string                 `json:"authorName,omitempty" db:"-"`
}

// InteractionCounts are derived from the ledger, never stored.
type InteractionCounts struct {
	Likes           int
	Comments        int
	Recommendations int
	Views           int
}

// PostStats is what the interaction bar renders for one viewer.
type PostStats struct {
	InteractionCounts
	LikedByMe       bool
	RecommendedByMe bool
}

// PostListFilter pages through posts the viewer may see.
type PostListFilter struct {
	ViewerID string
	AuthorID string
	Category string
	Offset   uint64
	Limit    uint64
}
