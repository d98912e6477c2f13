package documents

import (
	"context"
	"sort"
	"sync"
)

// PropertyResolver lets the memory repo mimic the SQL property join in dev
// mode without depending on the properties package.
type PropertyResolver func(ctx context.Context, userId, propertyID string) (*PropertyRef, bool)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // userId -> documents

	ResolveProperty PropertyResolver
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Create stores a document for a user.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			return docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByUser returns documents newest-first with property refs resolved.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	docs := append([]Document(nil), r.data[userId]...)
	r.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	if r.ResolveProperty != nil {
		for i := range docs {
			if docs[i].PropertyID == "" {
				continue
			}
			if ref, ok := r.ResolveProperty(ctx, userId, docs[i].PropertyID); ok {
				docs[i].Property = ref
			}
		}
	}
	return docs, nil
}

// UpdateAnalysis stores the generated analysis for a document.
func (r *MemoryRepo) UpdateAnalysis(ctx context.Context, userId, documentID, analysis string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			docs[i].Analysis = analysis
			r.data[userId] = docs
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a document owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userId, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userId]
	for i := range docs {
		if docs[i].ID == documentID {
			r.data[userId] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
