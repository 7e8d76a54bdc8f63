package notification

import (
	"context"

	"wheeldeal/internal/notification/model"
)

type NotificationRepository interface {
	ListFor(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
