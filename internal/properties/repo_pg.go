package properties

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new property.
func (r *PGRepo) Create(ctx context.Context, p Property) error {
	const query = `
INSERT INTO properties (id, user_id, name, address, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.UserID, p.Name, p.Address, p.CreatedAt)
	return err
}

// GetByID fetches a property owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userId, propertyID string) (Property, error) {
	const query = `
SELECT id, user_id, name, address, created_at
FROM properties
WHERE user_id = $1 AND id = $2`
	var p Property
	err := r.DB.QueryRowContext(ctx, query, userId, propertyID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Address,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	return p, nil
}

// ListByUser returns the user's properties, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Property, error) {
	const query = `
SELECT id, user_id, name, address, created_at
FROM properties
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
