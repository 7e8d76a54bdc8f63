package notification

import (
	"context"

	"wheeldeal/internal/notification/model"
	"wheeldeal/pkg/state"
)

type NotificationUsecase interface {
	// Load fetches the signed-in user's notifications, newest first.
	Load(ctx context.Context) error
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	Notifications() state.Result[[]model.Notification]
	Watch(ctx context.Context) (<-chan state.Result[[]model.Notification], state.CancelFunc)
}
