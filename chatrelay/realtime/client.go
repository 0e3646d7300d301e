package realtime

import (
	"context"
	"encoding/json"
	"time"

	"chatrelay/chatrelay/utils/types"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer bounds how far a slow connection may fall behind before
	// it is dropped.
	sendBuffer = 256
)

// Client is one live websocket connection. Deliveries go through Send
// and a single writer pump, so every member observes broadcasts in the
// order they were issued.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Send chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New(),
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
	}
}

// WritePump drains Send onto the connection. It exits when the hub
// closes Send (disconnect) or a write fails.
func (c *Client) WritePump(ctx context.Context, logger *zap.Logger) {
	for msg := range c.Send {
		writeCtx, cancel := context.WithTimeout(ctx, writeWait)
		err := c.Conn.Write(writeCtx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			logger.Warn("websocket write failed",
				zap.String("client_id", c.ID.String()),
				zap.Error(err),
			)
			return
		}
	}
	c.Conn.Close(websocket.StatusNormalClosure, "")
}

// ReadLoop decodes inbound event envelopes and hands them to onEvent.
// It returns when the connection dies; the caller is responsible for
// disconnecting the client from the hub afterwards.
func (c *Client) ReadLoop(ctx context.Context, logger *zap.Logger, onEvent func(types.InboundEvent)) {
	for {
		typ, data, err := c.Conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		var evt types.InboundEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			// Fire-and-forget transport: bad frames are dropped, never
			// errored back.
			logger.Debug("dropping malformed event",
				zap.String("client_id", c.ID.String()),
				zap.Error(err),
			)
			continue
		}
		onEvent(evt)
	}
}
