package usecase

import (
	"context"
	"sort"
	"sync"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/favorite"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/state"
)

// FavoriteUsecase holds the signed-in user's favorite listing ids. Writes
// are confirmed-then-cached, not optimistic: the local set changes only
// after the adapter reports success.
type FavoriteUsecase struct {
	repo   favorite.FavoriteRepository
	auth   backend.Auth
	logger logger.Logger

	mu  sync.Mutex
	set map[string]struct{}

	value *state.Value[[]string]
}

func NewFavoriteUsecase(repo favorite.FavoriteRepository, auth backend.Auth, logger logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		repo:   repo,
		auth:   auth,
		logger: logger,
		set:    make(map[string]struct{}),
		value:  state.NewValue([]string{}),
	}
}

func (uc *FavoriteUsecase) Load(ctx context.Context) error {
	userID, ok := uc.auth.CurrentUser(ctx)
	if !ok {
		return errors.ErrNotAuthenticated
	}

	ids, err := uc.repo.ListIDs(ctx, userID)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	uc.set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		uc.set[id] = struct{}{}
	}
	uc.mu.Unlock()

	uc.publish()
	return nil
}

func (uc *FavoriteUsecase) Toggle(ctx context.Context, listingID string) (bool, error) {
	userID, ok := uc.auth.CurrentUser(ctx)
	if !ok {
		return false, errors.ErrNotAuthenticated
	}

	uc.mu.Lock()
	_, present := uc.set[listingID]
	uc.mu.Unlock()

	if present {
		if err := uc.repo.Remove(ctx, userID, listingID); err != nil {
			uc.logger.Warn("favorite remove failed, set unchanged", "listing", listingID, "err", err)
			return true, err
		}
		uc.mu.Lock()
		delete(uc.set, listingID)
		uc.mu.Unlock()
		uc.publish()
		return false, nil
	}

	if err := uc.repo.Add(ctx, userID, listingID); err != nil {
		uc.logger.Warn("favorite add failed, set unchanged", "listing", listingID, "err", err)
		return false, err
	}
	uc.mu.Lock()
	uc.set[listingID] = struct{}{}
	uc.mu.Unlock()
	uc.publish()
	return true, nil
}

func (uc *FavoriteUsecase) IsFavorite(listingID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.set[listingID]
	return ok
}

func (uc *FavoriteUsecase) IDs() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sortedLocked()
}

func (uc *FavoriteUsecase) Watch(ctx context.Context) (<-chan []string, state.CancelFunc) {
	return uc.value.Watch(ctx)
}

func (uc *FavoriteUsecase) publish() {
	uc.mu.Lock()
	ids := uc.sortedLocked()
	uc.mu.Unlock()
	uc.value.Set(ids)
}

func (uc *FavoriteUsecase) sortedLocked() []string {
	ids := make([]string, 0, len(uc.set))
	for id := range uc.set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
