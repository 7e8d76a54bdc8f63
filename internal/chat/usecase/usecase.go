package usecase

import (
	"context"
	"sort"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/chat"
	"wheeldeal/internal/chat/model"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
)

type ChatUsecase struct {
	repo   chat.ChatRepository
	logger logger.Logger
}

func NewChatUsecase(repo chat.ChatRepository, logger logger.Logger) *ChatUsecase {
	return &ChatUsecase{repo: repo, logger: logger}
}

func (uc *ChatUsecase) ResolveOrCreateChat(ctx context.Context, selfID, otherID string) (model.Chat, error) {
	if selfID == "" || otherID == "" {
		return model.Chat{}, errors.InvalidArg("both participants are required")
	}

	if c, ok, err := uc.repo.FindByPair(ctx, selfID, otherID); err != nil {
		return model.Chat{}, err
	} else if ok {
		return c, nil
	}
	if c, ok, err := uc.repo.FindByPair(ctx, otherID, selfID); err != nil {
		return model.Chat{}, err
	} else if ok {
		return c, nil
	}

	return uc.repo.Create(ctx, selfID, otherID)
}

func (uc *ChatUsecase) Send(ctx context.Context, chatID, senderID, receiverID, body string) (model.Message, error) {
	if body == "" {
		return model.Message{}, errors.InvalidArg("message body is empty")
	}

	msg, err := uc.repo.AppendMessage(ctx, model.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	})
	if err != nil {
		return model.Message{}, err
	}

	// The message is durable at this point. A lost summary patch only
	// stales the inbox preview, so its failure is logged, not returned.
	if err := uc.repo.UpdateSummary(ctx, chatID, msg.Body, msg.CreatedAt); err != nil {
		uc.logger.Warn("chat summary update failed", "chat", chatID, "err", err)
	}
	return msg, nil
}

func (uc *ChatUsecase) Subscribe(ctx context.Context, chatID string) (<-chan []model.Message, backend.CancelFunc, error) {
	return uc.repo.SubscribeMessages(ctx, chatID)
}

func (uc *ChatUsecase) ChatsFor(ctx context.Context, userID string) ([]model.Chat, error) {
	chats, err := uc.repo.ChatsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})
	return chats, nil
}
