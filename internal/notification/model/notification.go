package model

import (
	"time"

	"wheeldeal/internal/backend"
)

// Notification is created by backend-side listing triggers; this side only
// reads, marks read and deletes.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Detail    string
	Read      bool
	CreatedAt time.Time
}

func FromDocument(d backend.Document) Notification {
	return Notification{
		ID:        d.ID(),
		UserID:    d.String("userId"),
		Title:     d.String("title"),
		Detail:    d.String("detail"),
		Read:      d.Bool("read"),
		CreatedAt: d.Time("createdAt"),
	}
}
