package usecase

import (
	"context"
	"sync"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/listing"
	"wheeldeal/internal/listing/model"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/state"
)

// ListingUsecase caches the last successful fetch and derives filtered
// views from it. All writes go through the adapter and are followed by an
// unconditional full re-fetch, so the cache never has to merge partial
// local state with the backend's authoritative copy.
type ListingUsecase struct {
	repo   listing.ListingRepository
	files  backend.Files
	logger logger.Logger

	value *state.Value[listing.Snapshot]

	mu      sync.Mutex
	draft   listing.FilterCriteria
	applied listing.FilterCriteria
}

func NewListingUsecase(repo listing.ListingRepository, files backend.Files, logger logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		files:  files,
		logger: logger,
		value: state.NewValue(listing.Snapshot{
			Fetch:    state.Idle[[]model.Listing](),
			Listings: []model.Listing{},
		}),
		draft:   listing.DefaultCriteria(),
		applied: listing.DefaultCriteria(),
	}
}

func (uc *ListingUsecase) Snapshot() listing.Snapshot {
	return uc.value.Get()
}

func (uc *ListingUsecase) Watch(ctx context.Context) (<-chan listing.Snapshot, state.CancelFunc) {
	return uc.value.Watch(ctx)
}

func (uc *ListingUsecase) FetchAll(ctx context.Context) error {
	uc.value.Update(func(s listing.Snapshot) listing.Snapshot {
		s.Fetch = state.Loading[[]model.Listing]()
		return s
	})

	listings, err := uc.repo.GetAll(ctx)
	if err != nil {
		uc.logger.Warn("listing fetch failed, keeping previous result", "err", err)
		uc.value.Update(func(s listing.Snapshot) listing.Snapshot {
			s.Fetch = state.Err[[]model.Listing](err.Error())
			return s
		})
		return err
	}

	uc.value.Set(listing.Snapshot{
		Fetch:    state.Ok(listings),
		Listings: listings,
	})
	return nil
}

func (uc *ListingUsecase) Add(ctx context.Context, l model.Listing) (string, error) {
	id, err := uc.repo.Create(ctx, l)
	if err != nil {
		return "", err
	}
	return id, uc.FetchAll(ctx)
}

func (uc *ListingUsecase) Update(ctx context.Context, l model.Listing) error {
	if err := uc.repo.Update(ctx, l); err != nil {
		return err
	}
	return uc.FetchAll(ctx)
}

func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.FetchAll(ctx)
}

// AttachPhoto uploads the bytes, then appends the returned reference to
// the listing's photo sequence and re-fetches. The upload must succeed
// before the listing document is touched.
func (uc *ListingUsecase) AttachPhoto(ctx context.Context, listingID, filename string, data []byte) (string, error) {
	url, err := uc.files.Upload(ctx, "listings/"+listingID+"/"+filename, data)
	if err != nil {
		return "", err
	}

	l, err := uc.repo.GetByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	l.PhotoURLs = append(l.PhotoURLs, url)
	if err := uc.repo.Update(ctx, l); err != nil {
		return "", err
	}
	return url, uc.FetchAll(ctx)
}

func (uc *ListingUsecase) SetDraft(c listing.FilterCriteria) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.draft = c
}

func (uc *ListingUsecase) Draft() listing.FilterCriteria {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.draft
}

// Apply commits the draft: only now do edits affect the visible results.
func (uc *ListingUsecase) Apply() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.applied = uc.draft
}

func (uc *ListingUsecase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.draft = listing.DefaultCriteria()
	uc.applied = listing.DefaultCriteria()
}

func (uc *ListingUsecase) Applied() listing.FilterCriteria {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.applied
}

func (uc *ListingUsecase) Filtered() []model.Listing {
	uc.mu.Lock()
	applied := uc.applied
	uc.mu.Unlock()
	return Filter(uc.value.Get().Listings, applied)
}

func (uc *ListingUsecase) ByOwner(ownerID string) []model.Listing {
	cached := uc.value.Get().Listings
	out := make([]model.Listing, 0)
	for _, l := range cached {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out
}
