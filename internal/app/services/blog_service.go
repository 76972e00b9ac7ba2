package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/app/models/dto"
	"github.com/mentorhub/mentorhub/internal/app/repositories"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// BlogService defines the interface for posts and the interaction ledger
type BlogService interface {
	CreatePost(ctx context.Context, authorID string, req *dto.BlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, callerID, postID string, req *dto.BlogPostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, callerID, postID string) error
	GetPost(ctx context.Context, viewerID, postID string) (*models.BlogPost, error)
	ListPosts(ctx context.Context, filter models.PostListFilter) ([]*models.BlogPost, int64, error)

	ToggleLike(ctx context.Context, userID, postID string) (*models.PostStats, error)
	ToggleRecommend(ctx context.Context, userID, postID string) (*models.PostStats, error)
	Comment(ctx context.Context, userID, postID, content string) (*models.BlogInteraction, error)
	RecordView(ctx context.Context, viewerID, postID string) error
	Stats(ctx context.Context, viewerID, postID string) (*models.PostStats, error)
	Comments(ctx context.Context, viewerID, postID string) ([]*models.BlogInteraction, error)
}

// blogServiceImpl implements BlogService
type blogServiceImpl struct {
	blogRepo     repositories.IBlogRepository
	authzService *appAuth.AuthorizationService
	publisher    EventPublisher
	logger       zerolog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(
	blogRepo repositories.IBlogRepository,
	authzService *appAuth.AuthorizationService,
	publisher EventPublisher,
	logger zerolog.Logger,
) BlogService {
	return &blogServiceImpl{
		blogRepo:     blogRepo,
		authzService: authzService,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
	}
}

func postFromRequest(post *models.BlogPost, req *dto.BlogPostRequest) error {
	status, err := domain.ParsePostStatus(req.Status)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return apperrors.NewBadRequestError("Title and content are required")
	}
	post.Title = title
	post.Content = req.Content
	post.Categories = domain.JoinCategories(req.Categories)
	post.Status = status
	return nil
}

func (s *blogServiceImpl) CreatePost(ctx context.Context, authorID string, req *dto.BlogPostRequest) (*models.BlogPost, error) {
	author, err := s.authzService.RequireActiveProfile(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.BlogPost{ID: newID(), AuthorID: authorID, AuthorName: author.DisplayName()}
	if err := postFromRequest(post, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("postID", post.ID).Str("status", string(post.Status)).Msg("Blog post created")
	return post, nil
}

// UpdatePost replaces a post. Author or admin.
func (s *blogServiceImpl) UpdatePost(ctx context.Context, callerID, postID string, req *dto.BlogPostRequest) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzService.CanModify(ctx, callerID, post.AuthorID); err != nil {
		return nil, err
	}
	if err := postFromRequest(post, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its ledger. Author or admin.
func (s *blogServiceImpl) DeletePost(ctx context.Context, callerID, postID string) error {
	post, err := s.blogRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if _, err := s.authzService.CanModify(ctx, callerID, post.AuthorID); err != nil {
		return err
	}
	if err := s.blogRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	s.logger.Info().Str("postID", postID).Str("deletedBy", callerID).Msg("Blog post deleted")
	return nil
}

// GetPost returns a post the viewer may read. Drafts of other authors read as not found.
func (s *blogServiceImpl) GetPost(ctx context.Context, viewerID, postID string) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID) {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

// ListPosts pages the posts visible to filter.ViewerID, newest first
func (s *blogServiceImpl) ListPosts(ctx context.Context, filter models.PostListFilter) ([]*models.BlogPost, int64, error) {
	posts, total, err := s.blogRepo.ListPosts(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, total, nil
}

func (s *blogServiceImpl) ToggleLike(ctx context.Context, userID, postID string) (*models.PostStats, error) {
	return s.toggle(ctx, userID, postID, domain.InteractionLike)
}

func (s *blogServiceImpl) ToggleRecommend(ctx context.Context, userID, postID string) (*models.PostStats, error) {
	return s.toggle(ctx, userID, postID, domain.InteractionRecommend)
}

// toggle deletes the caller's row of the given type when present and inserts it otherwise
func (s *blogServiceImpl) toggle(ctx context.Context, userID, postID string, kind domain.InteractionType) (*models.PostStats, error) {
	if _, err := s.authzService.RequireActiveProfile(ctx, userID); err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	existing, err := s.blogRepo.FindToggle(ctx, postID, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", kind, err)
	}
	if existing != nil {
		if err := s.blogRepo.DeleteInteraction(ctx, existing.ID); err != nil {
			return nil, err
		}
	} else {
		uid := userID
		err := s.blogRepo.AddInteraction(ctx, &models.BlogInteraction{ID: newID(), PostID: postID, UserID: &uid, Type: kind})
		// A concurrent toggle already inserted the row; the end state is the same.
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
	}

	stats, err := s.stats(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	s.notifyAuthor(post, stats)
	return stats, nil
}

// Comment appends a comment to a visible post
func (s *blogServiceImpl) Comment(ctx context.Context, userID, postID, content string) (*models.BlogInteraction, error) {
	author, err := s.authzService.RequireActiveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("Comment cannot be empty")
	}
	post, err := s.GetPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	uid := userID
	comment := &models.BlogInteraction{
		ID:         newID(),
		PostID:     postID,
		UserID:     &uid,
		Type:       domain.InteractionComment,
		Content:    &content,
		AuthorName: author.DisplayName(),
	}
	if err := s.blogRepo.AddInteraction(ctx, comment); err != nil {
		return nil, err
	}

	if stats, err := s.stats(ctx, userID, postID); err == nil {
		s.notifyAuthor(post, stats)
	}
	return comment, nil
}

// RecordView appends a view row. viewerID may be empty for anonymous readers.
func (s *blogServiceImpl) RecordView(ctx context.Context, viewerID, postID string) error {
	if _, err := s.GetPost(ctx, viewerID, postID); err != nil {
		return err
	}
	view := &models.BlogInteraction{ID: newID(), PostID: postID, Type: domain.InteractionView}
	if viewerID != "" {
		view.UserID = &viewerID
	}
	return s.blogRepo.AddInteraction(ctx, view)
}

// Stats derives the counters from the ledger at read time
func (s *blogServiceImpl) Stats(ctx context.Context, viewerID, postID string) (*models.PostStats, error) {
	if _, err := s.GetPost(ctx, viewerID, postID); err != nil {
		return nil, err
	}
	return s.stats(ctx, viewerID, postID)
}

func (s *blogServiceImpl) stats(ctx context.Context, viewerID, postID string) (*models.PostStats, error) {
	counts, err := s.blogRepo.CountInteractions(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error counting interactions: %w", err)
	}
	stats := &models.PostStats{InteractionCounts: counts}
	if viewerID == "" {
		return stats, nil
	}

	liked, err := s.blogRepo.FindToggle(ctx, postID, viewerID, domain.InteractionLike)
	if err != nil {
		return nil, fmt.Errorf("error loading like: %w", err)
	}
	recommended, err := s.blogRepo.FindToggle(ctx, postID, viewerID, domain.InteractionRecommend)
	if err != nil {
		return nil, fmt.Errorf("error loading recommendation: %w", err)
	}
	stats.LikedByMe = liked != nil
	stats.RecommendedByMe = recommended != nil
	return stats, nil
}

// Comments lists a visible post's comments, oldest first
func (s *blogServiceImpl) Comments(ctx context.Context, viewerID, postID string) ([]*models.BlogInteraction, error) {
	if _, err := s.GetPost(ctx, viewerID, postID); err != nil {
		return nil, err
	}
	comments, err := s.blogRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return comments, nil
}

func (s *blogServiceImpl) notifyAuthor(post *models.BlogPost, stats *models.PostStats) {
	payload := map[string]any{"postId": post.ID, "stats": dto.NewPostStatsResponse(&models.PostStats{InteractionCounts: stats.InteractionCounts})}
	s.publisher.Publish(post.AuthorID, websocket.NewEvent(websocket.EventBlogInteractionsChanged, payload))
}
