package favorite

import "context"

// FavoriteRepository manages (user, listing) membership pairs in the
// owning user's namespace.
type FavoriteRepository interface {
	ListIDs(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
}
