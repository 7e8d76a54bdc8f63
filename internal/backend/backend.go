// Package backend defines the contract between the in-process state
// containers and the external persistence/auth/file services. Containers
// receive these interfaces at construction, never global handles.
package backend

import "context"

// Document is a schemaless record. After a read the "id" key always holds
// the document id; Create assigns one when absent.
type Document map[string]any

// Filters are equality predicates, field name to required value.
type Filters map[string]any

type CancelFunc func()

type QueryOptions struct {
	SortField  string
	Descending bool
}

type QueryOption func(*QueryOptions)

// WithSort orders results by the given field ascending. Without it results
// come back in insertion order.
func WithSort(field string) QueryOption {
	return func(o *QueryOptions) { o.SortField = field }
}

func WithSortDesc(field string) QueryOption {
	return func(o *QueryOptions) {
		o.SortField = field
		o.Descending = true
	}
}

func BuildQueryOptions(opts []QueryOption) QueryOptions {
	var o QueryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type Store interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	// Get returns errors.ErrDocumentNotFound when the id is absent.
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, filters Filters, opts ...QueryOption) ([]Document, error)
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	// Subscribe delivers the full current result set on every change
	// (snapshot delivery, not diffs). Cancelling stops delivery and
	// releases the listener.
	Subscribe(ctx context.Context, collection string, filters Filters, opts ...QueryOption) (<-chan []Document, CancelFunc, error)
}

type Auth interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, bool)
	Reauthenticate(ctx context.Context, email, currentPassword string) error
	// UpdatePassword applies to the currently signed-in account.
	UpdatePassword(ctx context.Context, newPassword string) error
}

type Files interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Backend bundles the three service boundaries for injection.
type Backend struct {
	Auth  Auth
	Store Store
	Files Files
}
