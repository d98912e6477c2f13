package qahistory

import (
	"context"
	"errors"
)

// ErrWriteFailed is the generic store-write failure surfaced to callers.
var ErrWriteFailed = errors.New("failed to record question")

// Repo defines persistence operations for QA history.
type Repo interface {
	// Append records a new entry. Identical questions are never deduplicated.
	Append(ctx context.Context, entry Entry) error
	// ListByDocument returns a document's entries, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]Entry, error)
	// ListByDocuments returns entries for a set of documents, grouped by
	// document id, oldest first within each group.
	ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]Entry, error)
	// DeleteByDocument removes all entries for a document. Deleting for a
	// document with no entries is not an error.
	DeleteByDocument(ctx context.Context, documentID string) error
}
