package listing

import (
	"context"

	"wheeldeal/internal/listing/model"
	"wheeldeal/pkg/state"
)

// Snapshot is the listing store's observable state. Listings always holds
// the last successful fetch; Fetch reports the outcome of the most recent
// attempt, so a failed refresh shows an error without dropping the cache.
type Snapshot struct {
	Fetch    state.Result[[]model.Listing]
	Listings []model.Listing
}

type ListingUsecase interface {
	// FetchAll replaces the cached sequence in full on success. On failure
	// the previous successful result is retained and the error is exposed
	// as a transient condition.
	FetchAll(ctx context.Context) error

	// Write-throughs: each call hits the adapter and then re-fetches the
	// full set rather than reconciling partial local state.
	Add(ctx context.Context, l model.Listing) (string, error)
	Update(ctx context.Context, l model.Listing) error
	Delete(ctx context.Context, id string) error

	// AttachPhoto uploads the bytes and appends the returned reference to
	// the listing's ordered photo sequence.
	AttachPhoto(ctx context.Context, listingID, filename string, data []byte) (string, error)

	// Filter state. Draft edits are invisible until Apply copies them into
	// the applied criteria; Reset clears both to defaults.
	SetDraft(c FilterCriteria)
	Draft() FilterCriteria
	Apply()
	Reset()
	Applied() FilterCriteria

	// Filtered is a pure view over the cached fetch and the applied
	// criteria; it never triggers I/O.
	Filtered() []model.Listing
	ByOwner(ownerID string) []model.Listing

	Snapshot() Snapshot
	Watch(ctx context.Context) (<-chan Snapshot, state.CancelFunc)
}
