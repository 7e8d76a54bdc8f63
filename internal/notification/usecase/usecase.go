package usecase

import (
	"context"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/notification"
	"wheeldeal/internal/notification/model"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/state"
)

type NotificationUsecase struct {
	repo   notification.NotificationRepository
	auth   backend.Auth
	logger logger.Logger
	value  *state.Value[state.Result[[]model.Notification]]
}

func NewNotificationUsecase(repo notification.NotificationRepository, auth backend.Auth, logger logger.Logger) *NotificationUsecase {
	return &NotificationUsecase{
		repo:   repo,
		auth:   auth,
		logger: logger,
		value:  state.NewValue(state.Idle[[]model.Notification]()),
	}
}

func (uc *NotificationUsecase) Load(ctx context.Context) error {
	userID, ok := uc.auth.CurrentUser(ctx)
	if !ok {
		return errors.ErrNotAuthenticated
	}

	uc.value.Set(state.Loading[[]model.Notification]())
	items, err := uc.repo.ListFor(ctx, userID)
	if err != nil {
		uc.value.Set(state.Err[[]model.Notification](err.Error()))
		return err
	}
	uc.value.Set(state.Ok(items))
	return nil
}

func (uc *NotificationUsecase) MarkRead(ctx context.Context, id string) error {
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	return uc.Load(ctx)
}

func (uc *NotificationUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.Load(ctx)
}

func (uc *NotificationUsecase) Notifications() state.Result[[]model.Notification] {
	return uc.value.Get()
}

func (uc *NotificationUsecase) Watch(ctx context.Context) (<-chan state.Result[[]model.Notification], state.CancelFunc) {
	return uc.value.Watch(ctx)
}
