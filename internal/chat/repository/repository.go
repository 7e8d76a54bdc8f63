package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/chat"
	"wheeldeal/internal/chat/model"
)

const (
	ChatCollection    = "chats"
	MessageCollection = "messages"
)

type ChatRepository struct {
	store backend.Store
}

var _ chat.ChatRepository = (*ChatRepository)(nil)

func NewChatRepository(store backend.Store) *ChatRepository {
	return &ChatRepository{store: store}
}

func (r *ChatRepository) FindByPair(ctx context.Context, a, b string) (model.Chat, bool, error) {
	docs, err := r.store.Query(ctx, ChatCollection, backend.Filters{"userA": a, "userB": b})
	if err != nil {
		return model.Chat{}, false, errors.Wrap(err, "chatRepo.FindByPair.Query")
	}
	if len(docs) == 0 {
		return model.Chat{}, false, nil
	}
	return model.ChatFromDocument(docs[0]), true, nil
}

func (r *ChatRepository) Create(ctx context.Context, a, b string) (model.Chat, error) {
	id, err := r.store.Create(ctx, ChatCollection, backend.Document{
		"userA":         a,
		"userB":         b,
		"lastMessage":   "",
		"lastMessageAt": time.Time{},
	})
	if err != nil {
		return model.Chat{}, errors.Wrap(err, "chatRepo.Create")
	}
	return r.Get(ctx, id)
}

func (r *ChatRepository) Get(ctx context.Context, id string) (model.Chat, error) {
	doc, err := r.store.Get(ctx, ChatCollection, id)
	if err != nil {
		return model.Chat{}, err
	}
	return model.ChatFromDocument(doc), nil
}

func (r *ChatRepository) ChatsFor(ctx context.Context, userID string) ([]model.Chat, error) {
	asA, err := r.store.Query(ctx, ChatCollection, backend.Filters{"userA": userID})
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ChatsFor.QueryA")
	}
	asB, err := r.store.Query(ctx, ChatCollection, backend.Filters{"userB": userID})
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ChatsFor.QueryB")
	}

	out := make([]model.Chat, 0, len(asA)+len(asB))
	for _, d := range asA {
		out = append(out, model.ChatFromDocument(d))
	}
	for _, d := range asB {
		out = append(out, model.ChatFromDocument(d))
	}
	return out, nil
}

func (r *ChatRepository) AppendMessage(ctx context.Context, m model.Message) (model.Message, error) {
	id, err := r.store.Create(ctx, MessageCollection, m.Document())
	if err != nil {
		return model.Message{}, errors.Wrap(err, "chatRepo.AppendMessage.Create")
	}
	doc, err := r.store.Get(ctx, MessageCollection, id)
	if err != nil {
		return model.Message{}, errors.Wrap(err, "chatRepo.AppendMessage.Get")
	}
	return model.MessageFromDocument(doc), nil
}

func (r *ChatRepository) UpdateSummary(ctx context.Context, chatID, lastMessage string, at time.Time) error {
	err := r.store.Update(ctx, ChatCollection, chatID, backend.Document{
		"lastMessage":   lastMessage,
		"lastMessageAt": at,
	})
	if err != nil {
		return errors.Wrap(err, "chatRepo.UpdateSummary")
	}
	return nil
}

func (r *ChatRepository) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	docs, err := r.store.Query(ctx, MessageCollection,
		backend.Filters{"chatId": chatID}, backend.WithSort("createdAt"))
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.Messages.Query")
	}
	out := make([]model.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.MessageFromDocument(d))
	}
	return out, nil
}

// SubscribeMessages maps the store's document snapshots into message
// snapshots, preserving the timestamp-ascending order and the cancellation
// contract.
func (r *ChatRepository) SubscribeMessages(ctx context.Context, chatID string) (<-chan []model.Message, backend.CancelFunc, error) {
	docs, cancel, err := r.store.Subscribe(ctx, MessageCollection,
		backend.Filters{"chatId": chatID}, backend.WithSort("createdAt"))
	if err != nil {
		return nil, nil, errors.Wrap(err, "chatRepo.SubscribeMessages")
	}

	out := make(chan []model.Message, 1)
	go func() {
		defer close(out)
		for snapshot := range docs {
			msgs := make([]model.Message, 0, len(snapshot))
			for _, d := range snapshot {
				msgs = append(msgs, model.MessageFromDocument(d))
			}
			select {
			case out <- msgs:
			default:
				select {
				case <-out:
				default:
				}
				out <- msgs
			}
		}
	}()
	return out, cancel, nil
}
