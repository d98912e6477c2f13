package qahistory

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Entry // documentID -> entries
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Entry)}
}

// Append records a new entry.
func (r *MemoryRepo) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entry.DocumentID] = append(r.data[entry.DocumentID], entry)
	return nil
}

// ListByDocument returns a document's entries, oldest first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := append([]Entry(nil), r.data[documentID]...)
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// ListByDocuments returns entries grouped by document.
func (r *MemoryRepo) ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]Entry, error) {
	out := make(map[string][]Entry, len(documentIDs))
	for _, id := range documentIDs {
		entries, err := r.ListByDocument(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			out[id] = entries
		}
	}
	return out, nil
}

// DeleteByDocument removes all entries for a document.
func (r *MemoryRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, documentID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
