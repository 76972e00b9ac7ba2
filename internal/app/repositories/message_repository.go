package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
	"github.com/mentorhub/mentorhub/internal/pkg/dberrors"
	"github.com/mentorhub/mentorhub/internal/pkg/logger"
)

// IMessageRepository defines direct message storage
type IMessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	Thread(ctx context.Context, userA, userB string) ([]*models.Message, error)
	MarkThreadRead(ctx context.Context, readerID, senderID string) (int64, error)
	Conversations(ctx context.Context, userID string) ([]*models.Conversation, error)
}

// MessageRepository handles message database operations
type MessageRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(q db.Querier) *MessageRepository {
	return &MessageRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a message and fills its timestamp
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	sql, args, err := r.sb.Insert("messages").
		Columns("id", "sender_id", "receiver_id", "content").
		Values(msg.ID, msg.SenderID, msg.ReceiverID, msg.Content).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&msg.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("senderID", msg.SenderID).Str("receiverID", msg.ReceiverID).Msg("Error creating message")
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

// Thread returns the messages between two users, oldest first
func (r *MessageRepository) Thread(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	sql, args, err := r.sb.Select("id", "sender_id", "receiver_id", "content", "created_at", "read_at").
		From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"sender_id": userA, "receiver_id": userB},
			squirrel.Eq{"sender_id": userB, "receiver_id": userA},
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build thread query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading message thread")
		return nil, fmt.Errorf("error loading thread: %w", err)
	}
	defer rows.Close()

	msgs := []*models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// MarkThreadRead sets read_at on every unread message senderID sent to readerID
func (r *MessageRepository) MarkThreadRead(ctx context.Context, readerID, senderID string) (int64, error) {
	sql, args, err := r.sb.Update("messages").
		Set("read_at", squirrel.Expr("NOW()")).
		Where("receiver_id = ?", readerID).
		Where("sender_id = ?", senderID).
		Where("read_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark read query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("readerID", readerID).Msg("Error marking messages read")
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// conversationsSQL picks the latest message per counterpart and counts unread ones.
var conversationsSQL = `
WITH thread AS (
	SELECT m.*, CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END AS counterpart_id
	FROM messages m
	WHERE m.sender_id = $1 OR m.receiver_id = $1
), latest AS (
	SELECT DISTINCT ON (counterpart_id) counterpart_id, id, sender_id, receiver_id, content, created_at, read_at
	FROM thread
	ORDER BY counterpart_id, created_at DESC
), unread AS (
	SELECT sender_id AS counterpart_id, COUNT(*) AS unread_count
	FROM messages
	WHERE receiver_id = $1 AND read_at IS NULL
	GROUP BY sender_id
)
SELECT l.id, l.sender_id, l.receiver_id, l.content, l.created_at, l.read_at,
	COALESCE(u.unread_count, 0), ` + joinProfileColumns("p") + `
FROM latest l
JOIN profiles p ON p.id = l.counterpart_id
LEFT JOIN unread u ON u.counterpart_id = l.counterpart_id
ORDER BY l.created_at DESC`

// Conversations lists one entry per counterpart, most recent first
func (r *MessageRepository) Conversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	rows, err := r.db.Query(ctx, conversationsSQL, userID)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error listing conversations")
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	convs := []*models.Conversation{}
	for rows.Next() {
		var (
			m           models.Message
			unread      int
			counterpart profileRow
		)
		dest := []any{&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt, &m.ReadAt, &unread}
		if err := rows.Scan(append(dest, counterpart.dest()...)...); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		convs = append(convs, &models.Conversation{
			Counterpart: counterpart.profile(),
			LastMessage: &m,
			UnreadCount: unread,
		})
	}
	return convs, rows.Err()
}
