package documents

import (
	"time"

	"propdocs-backend/internal/qahistory"
)

// PropertyRef is the slice of a property joined into a document listing.
type PropertyRef struct {
	ID      string
	Name    string
	Address string
}

// Document represents an uploaded document owned by a user. Content holds the
// sanitized extracted text; Analysis is empty until the model analysis
// completes. The owner is fixed at creation and never reassigned.
type Document struct {
	ID           string
	UserID       string
	Name         string
	Content      string
	Analysis     string
	PropertyID   string
	DocumentType string
	MimeType     string
	SizeBytes    int64
	StorageKey   string
	CreatedAt    time.Time

	// Populated by list queries.
	Property *PropertyRef
	History  []qahistory.Entry
}
