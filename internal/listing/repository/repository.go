package repository

import (
	"context"

	"github.com/pkg/errors"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/listing"
	"wheeldeal/internal/listing/model"
)

const Collection = "listings"

type ListingRepository struct {
	store backend.Store
}

var _ listing.ListingRepository = (*ListingRepository)(nil)

func NewListingRepository(store backend.Store) *ListingRepository {
	return &ListingRepository{store: store}
}

func (r *ListingRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	docs, err := r.store.Query(ctx, Collection, nil, backend.WithSort("createdAt"))
	if err != nil {
		return nil, errors.Wrap(err, "listingRepo.GetAll.Query")
	}
	out := make([]model.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.FromDocument(d))
	}
	return out, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (model.Listing, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return model.Listing{}, err
	}
	return model.FromDocument(doc), nil
}

func (r *ListingRepository) Create(ctx context.Context, l model.Listing) (string, error) {
	id, err := r.store.Create(ctx, Collection, l.Document())
	if err != nil {
		return "", errors.Wrap(err, "listingRepo.Create")
	}
	return id, nil
}

func (r *ListingRepository) Update(ctx context.Context, l model.Listing) error {
	if err := r.store.Update(ctx, Collection, l.ID, l.Document()); err != nil {
		return errors.Wrap(err, "listingRepo.Update")
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		return errors.Wrap(err, "listingRepo.Delete")
	}
	return nil
}
