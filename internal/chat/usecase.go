package chat

import (
	"context"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/chat/model"
)

type ChatUsecase interface {
	// ResolveOrCreateChat treats the participant pair as unordered: it
	// checks (self, other) and (other, self) before creating. The
	// check-then-create is not atomic; two simultaneous first contacts can
	// create two chats for the same pair. Accepted limitation.
	ResolveOrCreateChat(ctx context.Context, selfID, otherID string) (model.Chat, error)

	// Send appends the message first and only then patches the parent
	// chat's last-message summary; losing the summary is tolerable, losing
	// the message is not.
	Send(ctx context.Context, chatID, senderID, receiverID, body string) (model.Message, error)

	// Subscribe delivers the chat's full message list, timestamp
	// ascending, on every change. Cancelling stops delivery.
	Subscribe(ctx context.Context, chatID string) (<-chan []model.Message, backend.CancelFunc, error)

	// ChatsFor lists a user's chats, most recent message first.
	ChatsFor(ctx context.Context, userID string) ([]model.Chat, error)
}
