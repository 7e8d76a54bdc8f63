package chat

import (
	"context"
	"time"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/chat/model"
)

type ChatRepository interface {
	// FindByPair checks one ordering only; callers check both.
	FindByPair(ctx context.Context, a, b string) (model.Chat, bool, error)
	Create(ctx context.Context, a, b string) (model.Chat, error)
	Get(ctx context.Context, id string) (model.Chat, error)
	ChatsFor(ctx context.Context, userID string) ([]model.Chat, error)

	// AppendMessage returns the stored message including its
	// backend-assigned timestamp.
	AppendMessage(ctx context.Context, m model.Message) (model.Message, error)
	UpdateSummary(ctx context.Context, chatID, lastMessage string, at time.Time) error

	Messages(ctx context.Context, chatID string) ([]model.Message, error)
	SubscribeMessages(ctx context.Context, chatID string) (<-chan []model.Message, backend.CancelFunc, error)
}
