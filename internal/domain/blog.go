package domain

import (
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

var ErrInvalidPostStatus = apperrors.NewBadRequestError("post status must be draft or published")

// ParsePostStatus treats an empty value as draft.
func ParsePostStatus(s string) (PostStatus, error) {
	switch status := PostStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case "":
		return PostDraft, nil
	case PostDraft, PostPublished:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPostStatus, s)
	}
}

// InteractionType is the kind of row recorded in the blog interaction ledger.
type InteractionType string

const (
	InteractionLike      InteractionType = "like"
	InteractionComment   InteractionType = "comment"
	InteractionRecommend InteractionType = "recommend"
	InteractionView      InteractionType = "view"
)

// IsToggle reports whether at most one row per user and post may exist for t.
func (t InteractionType) IsToggle() bool {
	return t == InteractionLike || t == InteractionRecommend
}

// SplitCategories turns the stored comma-joined list into trimmed, non-empty names.
func SplitCategories(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			categories = append(categories, p)
		}
	}
	return categories
}

// JoinCategories is the inverse of SplitCategories.
func JoinCategories(categories []string) string {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	return strings.Join(cleaned, ",")
}
