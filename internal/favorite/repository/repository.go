package repository

import (
	"context"

	"github.com/pkg/errors"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/favorite"
)

const Collection = "favorites"

type FavoriteRepository struct {
	store backend.Store
}

var _ favorite.FavoriteRepository = (*FavoriteRepository)(nil)

func NewFavoriteRepository(store backend.Store) *FavoriteRepository {
	return &FavoriteRepository{store: store}
}

func (r *FavoriteRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.store.Query(ctx, Collection, backend.Filters{"userId": userID})
	if err != nil {
		return nil, errors.Wrap(err, "favoriteRepo.ListIDs.Query")
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.String("listingId"))
	}
	return ids, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID string) error {
	_, err := r.store.Create(ctx, Collection, backend.Document{
		"userId":    userID,
		"listingId": listingID,
	})
	if err != nil {
		return errors.Wrap(err, "favoriteRepo.Add.Create")
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	docs, err := r.store.Query(ctx, Collection, backend.Filters{
		"userId":    userID,
		"listingId": listingID,
	})
	if err != nil {
		return errors.Wrap(err, "favoriteRepo.Remove.Query")
	}
	for _, d := range docs {
		if err := r.store.Delete(ctx, Collection, d.ID()); err != nil {
			return errors.Wrap(err, "favoriteRepo.Remove.Delete")
		}
	}
	return nil
}
