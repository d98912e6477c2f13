package properties

import "context"

// Repo defines persistence operations for properties.
type Repo interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, userId, propertyID string) (Property, error)
	ListByUser(ctx context.Context, userId string) ([]Property, error)
}
