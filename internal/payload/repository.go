package payload

import "context"

// ListFilter narrows List results.
type ListFilter struct {
	// Limit caps the number of payloads returned. 0 means no limit.
	Limit int
}

// Repository persists payloads.
type Repository interface {
	// Save inserts p. IDs are unique.
	Save(ctx context.Context, p *Payload) error

	// FindByID returns NotFoundError when no payload has id.
	FindByID(ctx context.Context, id string) (*Payload, error)

	// List returns payloads newest first. Payloads received at the same
	// instant are ordered by most recent insert.
	List(ctx context.Context, filter ListFilter) ([]*Payload, error)

	// Delete returns NotFoundError when no payload has id.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every payload and returns how many there were.
	DeleteAll(ctx context.Context) (int, error)

	Count(ctx context.Context) (int, error)
}
