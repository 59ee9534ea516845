package payload

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepository keeps payloads in process memory. It backs the viewer
// when storage is disabled and the tests of packages built on Service.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []*Payload // insertion order
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func clonePayload(p *Payload) *Payload {
	c := *p
	c.Body = append([]byte(nil), p.Body...)
	return &c
}

func (r *MemoryRepository) Save(_ context.Context, p *Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == p.ID {
			return fmt.Errorf("payload %s already exists", p.ID)
		}
	}
	r.items = append(r.items, clonePayload(p))
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Payload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			return clonePayload(p), nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter) ([]*Payload, error) {
	r.mu.RLock()
	out := make([]*Payload, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, clonePayload(r.items[i]))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

func (r *MemoryRepository) DeleteAll(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.items)
	r.items = nil
	return n, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
