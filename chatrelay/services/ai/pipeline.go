package ai

import (
	"context"
	"strings"

	"chatrelay/chatrelay/sources/psql/models"
	"chatrelay/chatrelay/utils/types"

	"go.uber.org/zap"
)

const defaultHistoryWindow = 20

// MessageStore is the slice of the message DAO the pipeline needs.
type MessageStore interface {
	Append(ctx context.Context, roomID, userID int, content string) (*models.Message, error)
	GetMessageByID(ctx context.Context, id int64) (*types.ChatMessageView, error)
	RecentHistory(ctx context.Context, roomID, limit int) ([]types.ChatMessageView, error)
}

// UserStore resolves the reserved AI identity.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, username string) (*models.User, error)
}

// Pipeline produces the AI reply for a room: resolve the AI user, window
// the room history, generate, persist. Generation failures never
// propagate; they collapse into FallbackReply so the relay cannot stall
// on a provider outage.
type Pipeline struct {
	users         UserStore
	messages      MessageStore
	generator     Generator
	historyWindow int
	logger        *zap.Logger
}

func NewPipeline(users UserStore, messages MessageStore, generator Generator, historyWindow int, logger *zap.Logger) *Pipeline {
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	return &Pipeline{
		users:         users,
		messages:      messages,
		generator:     generator,
		historyWindow: historyWindow,
		logger:        logger,
	}
}

// Reply generates, persists and returns the AI reply for the room. The
// only errors it returns are store failures around the AI row itself.
func (p *Pipeline) Reply(ctx context.Context, roomID int) (*types.ChatMessageView, error) {
	aiUser, err := p.users.GetOrCreateUser(ctx, AIUsername)
	if err != nil {
		return nil, err
	}

	history, err := p.messages.RecentHistory(ctx, roomID, p.historyWindow)
	if err != nil {
		// Degrade to an empty window; the append below will surface a
		// store that is actually down.
		p.logger.Warn("history read failed, replying without context",
			zap.Int("room_id", roomID),
			zap.Error(err),
		)
		history = nil
	}

	reply, err := p.generator.Complete(ctx, ComposePrompt(history))
	if err != nil {
		p.logger.Warn("generation failed, using fallback reply",
			zap.Int("room_id", roomID),
			zap.Error(err),
		)
		reply = FallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	msg, err := p.messages.Append(ctx, roomID, aiUser.ID, reply)
	if err != nil {
		return nil, err
	}
	return p.messages.GetMessageByID(ctx, msg.ID)
}
