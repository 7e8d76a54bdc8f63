package repository

import (
	"context"

	"github.com/pkg/errors"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/notification"
	"wheeldeal/internal/notification/model"
)

const Collection = "notifications"

type NotificationRepository struct {
	store backend.Store
}

var _ notification.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(store backend.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) ListFor(ctx context.Context, userID string) ([]model.Notification, error) {
	docs, err := r.store.Query(ctx, Collection,
		backend.Filters{"userId": userID}, backend.WithSortDesc("createdAt"))
	if err != nil {
		return nil, errors.Wrap(err, "notificationRepo.ListFor.Query")
	}
	out := make([]model.Notification, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.FromDocument(d))
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	err := r.store.Update(ctx, Collection, id, backend.Document{"read": true})
	if err != nil {
		return errors.Wrap(err, "notificationRepo.MarkRead")
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return errors.Wrap(err, "notificationRepo.Delete")
	}
	return nil
}
