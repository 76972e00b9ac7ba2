package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// blogToggleKey is the partial unique index on (post_id, user_id, type) for likes and recommendations.
const blogToggleKey = "blog_interactions_toggle_key"

// IBlogRepository defines storage for posts and the interaction ledger
type IBlogRepository interface {
	CreatePost(ctx context.Context, post *models.BlogPost) error
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, post *models.BlogPost) error
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, filter models.PostListFilter) ([]*models.BlogPost, int64, error)

	FindToggle(ctx context.Context, postID, userID string, kind domain.InteractionType) (*models.BlogInteraction, error)
	AddInteraction(ctx context.Context, interaction *models.BlogInteraction) error
	DeleteInteraction(ctx context.Context, id string) error
	CountInteractions(ctx context.Context, postID string) (models.InteractionCounts, error)
	ListComments(ctx context.Context, postID string) ([]*models.BlogInteraction, error)
}

// BlogRepository handles blog database operations
type BlogRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(q db.Querier) *BlogRepository {
	return &BlogRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BlogRepository) selectPosts() squirrel.SelectBuilder {
	return r.sb.Select(
		"b.id", "b.title", "b.content", "COALESCE(b.categories, '')", "b.status", "b.author_id",
		"COALESCE(NULLIF(p.full_name, ''), p.email)", "b.created_at", "b.updated_at",
	).From("blog_posts b").Join("profiles p ON p.id = b.author_id")
}

func scanPost(row rowScanner) (*models.BlogPost, error) {
	var (
		post   models.BlogPost
		status string
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Categories, &status, &post.AuthorID, &post.AuthorName, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParsePostStatus(status)
	if err != nil {
		parsed = domain.PostDraft
	}
	post.Status = parsed
	return &post, nil
}

// CreatePost inserts a post
func (r *BlogRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {
	sql, args, err := r.sb.Insert("blog_posts").
		Columns("id", "title", "content", "categories", "status", "author_id").
		Values(post.ID, post.Title, post.Content, post.Categories, string(post.Status), post.AuthorID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create post query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("authorID", post.AuthorID).Msg("Error creating blog post")
		return fmt.Errorf("error creating post: %w", err)
	}
	return nil
}

// GetPost retrieves a post with its author name
func (r *BlogRepository) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	sql, args, err := r.selectPosts().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces the editable fields of a post
func (r *BlogRepository) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	sql, args, err := r.sb.Update("blog_posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("categories", post.Categories).
		Set("status", string(post.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": post.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update post query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Str("postID", post.ID).Msg("Error updating blog post")
		return fmt.Errorf("error updating post: %w", err)
	}
	return nil
}

// DeletePost removes a post and its ledger rows
func (r *BlogRepository) DeletePost(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("blog_posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("postID", id).Msg("Error deleting blog post")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// ListPosts pages published posts plus the viewer's own drafts, newest first
func (r *BlogRepository) ListPosts(ctx context.Context, filter models.PostListFilter) ([]*models.BlogPost, int64, error) {
	where := squirrel.And{squirrel.Or{
		squirrel.Eq{"b.status": string(domain.PostPublished)},
		squirrel.Eq{"b.author_id": filter.ViewerID},
	}}
	if filter.AuthorID != "" {
		where = append(where, squirrel.Eq{"b.author_id": filter.AuthorID})
	}
	if filter.Category != "" {
		where = append(where, squirrel.Expr("? = ANY(string_to_array(b.categories, ','))", filter.Category))
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("blog_posts b").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count posts query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	sql, args, err := r.selectPosts().
		Where(where).
		OrderBy("b.created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing blog posts")
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

// FindToggle returns the viewer's like or recommend row for a post, or nil
func (r *BlogRepository) FindToggle(ctx context.Context, postID, userID string, kind domain.InteractionType) (*models.BlogInteraction, error) {
	sql, args, err := r.sb.Select("id", "post_id", "user_id", "type", "content", "created_at").
		From("blog_interactions").
		Where("post_id = ?", postID).
		Where("user_id = ?", userID).
		Where("type = ?", string(kind)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find interaction query: %w", err)
	}

	var (
		i       models.BlogInteraction
		rowKind string
	)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&i.ID, &i.PostID, &i.UserID, &rowKind, &i.Content, &i.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding interaction: %w", err)
	}
	i.Type = domain.InteractionType(rowKind)
	return &i, nil
}

// AddInteraction appends a ledger row
func (r *BlogRepository) AddInteraction(ctx context.Context, interaction *models.BlogInteraction) error {
	sql, args, err := r.sb.Insert("blog_interactions").
		Columns("id", "post_id", "user_id", "type", "content").
		Values(interaction.ID, interaction.PostID, interaction.UserID, string(interaction.Type), interaction.Content).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add interaction query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&interaction.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, blogToggleKey) {
			return apperrors.NewConflictError("Interaction already recorded")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Str("postID", interaction.PostID).Str("type", string(interaction.Type)).Msg("Error adding blog interaction")
		return fmt.Errorf("error adding interaction: %w", err)
	}
	return nil
}

// DeleteInteraction removes a ledger row
func (r *BlogRepository) DeleteInteraction(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("blog_interactions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete interaction query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("interactionID", id).Msg("Error deleting blog interaction")
		return fmt.Errorf("error deleting interaction: %w", err)
	}
	return nil
}

// CountInteractions aggregates the ledger by type for one post
func (r *BlogRepository) CountInteractions(ctx context.Context, postID string) (models.InteractionCounts, error) {
	sql, args, err := r.sb.Select(
		"COUNT(*) FILTER (WHERE type = 'like')",
		"COUNT(*) FILTER (WHERE type = 'comment')",
		"COUNT(*) FILTER (WHERE type = 'recommend')",
		"COUNT(*) FILTER (WHERE type = 'view')",
	).From("blog_interactions").Where(squirrel.Eq{"post_id": postID}).ToSql()
	if err != nil {
		return models.InteractionCounts{}, fmt.Errorf("failed to build count interactions query: %w", err)
	}

	var c models.InteractionCounts
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.Likes, &c.Comments, &c.Recommendations, &c.Views); err != nil {
		return models.InteractionCounts{}, fmt.Errorf("error counting interactions: %w", err)
	}
	return c, nil
}

// ListComments returns a post's comments, oldest first
func (r *BlogRepository) ListComments(ctx context.Context, postID string) ([]*models.BlogInteraction, error) {
	sql, args, err := r.sb.Select(
		"i.id", "i.post_id", "i.user_id", "i.content", "i.created_at",
		"COALESCE(NULLIF(p.full_name, ''), p.email, '')",
	).
		From("blog_interactions i").
		LeftJoin("profiles p ON p.id = i.user_id").
		Where(squirrel.Eq{"i.post_id": postID, "i.type": string(domain.InteractionComment)}).
		OrderBy("i.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.BlogInteraction{}
	for rows.Next() {
		c := models.BlogInteraction{Type: domain.InteractionComment}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
