package properties

import "time"

// Property represents a managed rental property.
type Property struct {
	ID        string
	UserID    string
	Name      string
	Address   string
	CreatedAt time.Time
}
