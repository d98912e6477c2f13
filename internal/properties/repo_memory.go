package properties

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Property // userId -> properties
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Property)}
}

// Create stores a property for a user.
func (r *MemoryRepo) Create(ctx context.Context, p Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.UserID] = append(r.data[p.UserID], p)
	return nil
}

// GetByID returns a property owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, propertyID string) (Property, error) {
	if err := ctx.Err(); err != nil {
		return Property{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data[userId] {
		if p.ID == propertyID {
			return p, nil
		}
	}
	return Property{}, ErrNotFound
}

// ListByUser returns the user's properties, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	props := append([]Property(nil), r.data[userId]...)
	r.mu.RUnlock()

	sort.Slice(props, func(i, j int) bool {
		return props[i].CreatedAt.After(props[j].CreatedAt)
	})
	return props, nil
}

var _ Repo = (*MemoryRepo)(nil)
