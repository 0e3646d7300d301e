package types

import (
	"encoding/json"
	"time"
)

// ChatMessageView is the display shape of a persisted message, the row
// re-read with the author's username joined in.
type ChatMessageView struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// InboundEvent is the envelope for events a client sends over /ws.
type InboundEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// OutboundEvent is the envelope for events fanned out to room members.
type OutboundEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	EventJoinRoom    = "joinRoom"
	EventLeaveRoom   = "leaveRoom"
	EventChatMessage = "chatMessage"
)

type JoinRoomEvent struct {
	RoomID int `json:"room_id"`
}

type ChatMessageEvent struct {
	RoomID  int    `json:"room_id"`
	UserID  int    `json:"user_id"`
	Content string `json:"content"`
}

func NewChatMessageOutbound(msg ChatMessageView) OutboundEvent {
	return OutboundEvent{Type: EventChatMessage, Data: msg}
}

type PostMessageRequest struct {
	UserID  int    `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}
