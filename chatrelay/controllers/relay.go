package controllers

import (
	"context"
	"strings"

	"chatrelay/chatrelay/utils/types"

	"go.uber.org/zap"
)

// Broadcaster fans an event out to the current members of a room.
type Broadcaster interface {
	BroadcastToRoom(roomID int, evt types.OutboundEvent)
}

// Replier produces the persisted AI reply for a room.
type Replier interface {
	Reply(ctx context.Context, roomID int) (*types.ChatMessageView, error)
}

// RelayController drives one inbound chat event end to end:
// persist -> broadcast -> AI reply persist -> AI reply broadcast.
// The transport is fire-and-forget, so every failure here is logged
// server-side and never surfaced to the sender.
type RelayController struct {
	messages MessageStore
	hub      Broadcaster
	pipeline Replier
	logger   *zap.Logger
	errLog   *zap.Logger
}

func NewRelayController(messages MessageStore, hub Broadcaster, pipeline Replier, logger, errLog *zap.Logger) *RelayController {
	return &RelayController{
		messages: messages,
		hub:      hub,
		pipeline: pipeline,
		logger:   logger,
		errLog:   errLog,
	}
}

// HandleChatMessage processes one chat event. Events in the same room
// from different senders run concurrently and may interleave; the store
// insert order stays the canonical timeline.
func (c *RelayController) HandleChatMessage(ctx context.Context, evt types.ChatMessageEvent) {
	// Malformed events are dropped without side effects.
	if evt.RoomID == 0 || evt.UserID == 0 || strings.TrimSpace(evt.Content) == "" {
		c.logger.Debug("dropping incomplete chat event",
			zap.Int("room_id", evt.RoomID),
			zap.Int("user_id", evt.UserID),
		)
		return
	}

	msg, err := c.messages.Append(ctx, evt.RoomID, evt.UserID, evt.Content)
	if err != nil {
		c.errLog.Error("chat message persist failed",
			zap.Int("room_id", evt.RoomID),
			zap.Int("user_id", evt.UserID),
			zap.Error(err),
		)
		return
	}

	view, err := c.messages.GetMessageByID(ctx, msg.ID)
	if err != nil {
		// Append succeeded but the row is gone: invariant violation.
		c.errLog.Error("persisted message vanished before broadcast",
			zap.Int64("message_id", msg.ID),
			zap.Error(err),
		)
		return
	}
	c.hub.BroadcastToRoom(evt.RoomID, types.NewChatMessageOutbound(*view))

	aiView, err := c.pipeline.Reply(ctx, evt.RoomID)
	if err != nil {
		// Generation failures never reach this point; this is the AI
		// row failing to persist. Log and finish without a second
		// broadcast.
		c.errLog.Error("ai reply persist failed",
			zap.Int("room_id", evt.RoomID),
			zap.Error(err),
		)
		return
	}
	c.hub.BroadcastToRoom(evt.RoomID, types.NewChatMessageOutbound(*aiView))
}
