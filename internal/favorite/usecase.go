package favorite

import (
	"context"

	"wheeldeal/pkg/state"
)

type FavoriteUsecase interface {
	// Load replaces the local set with the backend's current membership.
	Load(ctx context.Context) error

	// Toggle flips membership. The local set is updated only after the
	// adapter confirms the write; on failure it is left unchanged and the
	// error is recoverable. Returns whether the listing is now a favorite.
	Toggle(ctx context.Context, listingID string) (bool, error)

	// IsFavorite is a pure membership query; it never fetches.
	IsFavorite(listingID string) bool

	// IDs returns the cached membership, sorted.
	IDs() []string

	Watch(ctx context.Context) (<-chan []string, state.CancelFunc)
}
