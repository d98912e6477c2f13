package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	// ListByUser returns the user's documents newest-first with the owning
	// property reference populated where set. History is attached by the
	// service layer.
	ListByUser(ctx context.Context, userId string) ([]Document, error)
	UpdateAnalysis(ctx context.Context, userId, documentID, analysis string) error
	// Delete removes a document. Returns ErrNotFound when no owned row
	// matched the id.
	Delete(ctx context.Context, userId, documentID string) error
}
