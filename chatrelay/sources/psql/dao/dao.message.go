package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chatrelay/chatrelay/sources/psql/models"
	"chatrelay/chatrelay/utils/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageDAO is the append-only message log. It runs on the pgx pool
// directly: the relay hits these queries on every chat event.
type MessageDAO struct {
	Pool *pgxpool.Pool
}

func NewMessageDAO(pool *pgxpool.Pool) *MessageDAO {
	return &MessageDAO{Pool: pool}
}

const fkViolation = "23503"

// Append persists one message and returns it with the store-assigned id
// and created_at. Rooms and users must already exist.
func (dao *MessageDAO) Append(ctx context.Context, roomID, userID int, content string) (*models.Message, error) {
	if roomID == 0 || userID == 0 || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: room_id, user_id and content are required", ErrValidation)
	}

	var exists bool
	err := dao.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM chat_rooms WHERE id = $1)", roomID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("room lookup: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
	}
	err = dao.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	query := `INSERT INTO messages (room_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, room_id, user_id, content, created_at`
	row := dao.Pool.QueryRow(ctx, query, roomID, userID, content)
	var msg models.Message
	if err := row.Scan(&msg.ID, &msg.RoomID, &msg.UserID, &msg.Content, &msg.CreatedAt); err != nil {
		// The existence checks above race a concurrent delete in theory;
		// the FK constraint is the backstop.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, pgErr.ConstraintName)
		}
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &msg, nil
}

// GetMessageByID re-reads a persisted message with the author's username
// joined in. A miss here means a caller handed us an id that never came
// out of Append.
func (dao *MessageDAO) GetMessageByID(ctx context.Context, id int64) (*types.ChatMessageView, error) {
	query := `SELECT m.id, m.user_id, m.content, m.created_at, u.username
		FROM messages m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1`
	row := dao.Pool.QueryRow(ctx, query, id)
	var view types.ChatMessageView
	err := row.Scan(&view.ID, &view.UserID, &view.Content, &view.CreatedAt, &view.Username)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%w: message %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &view, nil
}

// RecentHistory returns at most limit messages for a room in
// chronological ascending order, the canonical shape for a reply
// context window. The store is asked newest-first with the limit, then
// the page is reversed.
func (dao *MessageDAO) RecentHistory(ctx context.Context, roomID, limit int) ([]types.ChatMessageView, error) {
	msgs, err := dao.ListRecent(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListRecent returns at most limit messages for a room, newest first.
// Rooms with no messages yield an empty slice, not an error.
func (dao *MessageDAO) ListRecent(ctx context.Context, roomID, limit int) ([]types.ChatMessageView, error) {
	query := `SELECT m.id, m.user_id, m.content, m.created_at, u.username
		FROM messages m
		JOIN users u ON m.user_id = u.id
		WHERE m.room_id = $1
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2`
	rows, err := dao.Pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]types.ChatMessageView, 0, limit)
	for rows.Next() {
		var view types.ChatMessageView
		if err := rows.Scan(&view.ID, &view.UserID, &view.Content, &view.CreatedAt, &view.Username); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
