package controllers

import (
	"context"

	"chatrelay/chatrelay/sources/psql/models"
	"chatrelay/chatrelay/utils/types"
)

// restHistoryLimit caps GET /rooms/{id}/messages, newest first. Callers
// reverse for display.
const restHistoryLimit = 50

// MessageStore is the message DAO surface the REST controller needs.
type MessageStore interface {
	Append(ctx context.Context, roomID, userID int, content string) (*models.Message, error)
	GetMessageByID(ctx context.Context, id int64) (*types.ChatMessageView, error)
	ListRecent(ctx context.Context, roomID, limit int) ([]types.ChatMessageView, error)
}

type MessageController struct {
	messages MessageStore
}

func NewMessageController(messages MessageStore) *MessageController {
	return &MessageController{messages: messages}
}

func (c *MessageController) ListRoomMessages(ctx context.Context, roomID int) ([]types.ChatMessageView, error) {
	return c.messages.ListRecent(ctx, roomID, restHistoryLimit)
}

// PostMessage is the direct append for non-socket clients. It bypasses
// the AI pipeline entirely.
func (c *MessageController) PostMessage(ctx context.Context, roomID, userID int, content string) (*types.ChatMessageView, error) {
	msg, err := c.messages.Append(ctx, roomID, userID, content)
	if err != nil {
		return nil, err
	}
	return c.messages.GetMessageByID(ctx, msg.ID)
}
