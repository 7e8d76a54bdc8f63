// Package memory is the in-memory Backend Adapter used as the test seam.
// It keeps insertion order, delivers full snapshots to subscribers and is
// safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wheeldeal/internal/backend"
	"wheeldeal/pkg/errors"
)

var _ backend.Store = (*Store)(nil)

type Store struct {
	mu          sync.Mutex
	collections map[string][]backend.Document
	subs        map[int]*subscription
	nextSub     int
}

type subscription struct {
	collection string
	filters    backend.Filters
	opts       backend.QueryOptions
	ch         chan []backend.Document
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string][]backend.Document),
		subs:        make(map[int]*subscription),
	}
}

func (s *Store) Create(ctx context.Context, collection string, doc backend.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := doc.Clone()
	id := d.String("id")
	if id == "" {
		id = uuid.NewString()
		d["id"] = id
	}
	if _, ok := d["createdAt"]; !ok {
		d["createdAt"] = time.Now().UTC()
	}
	s.collections[collection] = append(s.collections[collection], d)
	s.notifyLocked(collection)
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (backend.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.collections[collection] {
		if d.ID() == id {
			return d.Clone(), nil
		}
	}
	return nil, errors.ErrDocumentNotFound
}

func (s *Store) Query(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) ([]backend.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked(collection, filters, backend.BuildQueryOptions(opts)), nil
}

func (s *Store) queryLocked(collection string, filters backend.Filters, o backend.QueryOptions) []backend.Document {
	out := make([]backend.Document, 0)
	for _, d := range s.collections[collection] {
		if matches(d, filters) {
			out = append(out, d.Clone())
		}
	}
	if o.SortField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			less := backend.Compare(out[i][o.SortField], out[j][o.SortField]) < 0
			if o.Descending {
				return !less && backend.Compare(out[i][o.SortField], out[j][o.SortField]) != 0
			}
			return less
		})
	}
	return out
}

func matches(d backend.Document, filters backend.Filters) bool {
	for k, want := range filters {
		if backend.Compare(d[k], want) != 0 {
			return false
		}
	}
	return true
}

func (s *Store) Update(ctx context.Context, collection, id string, patch backend.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.collections[collection] {
		if d.ID() != id {
			continue
		}
		merged := d.Clone()
		for k, v := range patch {
			if k == "id" {
				continue
			}
			merged[k] = v
		}
		s.collections[collection][i] = merged
		s.notifyLocked(collection)
		return nil
	}
	return errors.ErrDocumentNotFound
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, d := range docs {
		if d.ID() == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			s.notifyLocked(collection)
			return nil
		}
	}
	// Deleting an absent document is a no-op, matching the void contract.
	return nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) (<-chan []backend.Document, backend.CancelFunc, error) {
	sub := &subscription{
		collection: collection,
		filters:    filters,
		opts:       backend.BuildQueryOptions(opts),
		ch:         make(chan []backend.Document, 1),
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	sub.ch <- s.queryLocked(collection, filters, sub.opts)
	s.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(done)
			close(sub.ch)
		})
	}
	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-done:
			}
		}()
	}
	return sub.ch, cancel, nil
}

// notifyLocked re-runs each affected subscription's query and pushes the
// fresh snapshot. A slow consumer is coalesced to the latest snapshot.
func (s *Store) notifyLocked(collection string) {
	for _, sub := range s.subs {
		if sub.collection != collection {
			continue
		}
		snapshot := s.queryLocked(sub.collection, sub.filters, sub.opts)
		for {
			select {
			case sub.ch <- snapshot:
			default:
				// Full buffer: replace the stale snapshot with this one.
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}
