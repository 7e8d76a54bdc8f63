package listing

import (
	"context"

	"wheeldeal/internal/listing/model"
)

// ListingRepository is a thin pass-through to the document store; it holds
// no state and performs no caching.
type ListingRepository interface {
	GetAll(ctx context.Context) ([]model.Listing, error)
	GetByID(ctx context.Context, id string) (model.Listing, error)
	Create(ctx context.Context, l model.Listing) (string, error)
	Update(ctx context.Context, l model.Listing) error
	Delete(ctx context.Context, id string) error
}
