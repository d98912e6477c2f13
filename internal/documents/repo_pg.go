package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    name,
    content,
    analysis,
    property_id,
    document_type,
    mime_type,
    size_bytes,
    storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Name,
		doc.Content,
		nullable(doc.Analysis),
		nullable(doc.PropertyID),
		nullable(doc.DocumentType),
		doc.MimeType,
		doc.SizeBytes,
		nullable(doc.StorageKey),
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, name, content, analysis, property_id, document_type, mime_type, size_bytes, storage_key, created_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var doc Document
	var analysis, propertyID, documentType, storageKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userId, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Name,
		&doc.Content,
		&analysis,
		&propertyID,
		&documentType,
		&doc.MimeType,
		&doc.SizeBytes,
		&storageKey,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.Analysis = analysis.String
	doc.PropertyID = propertyID.String
	doc.DocumentType = documentType.String
	doc.StorageKey = storageKey.String
	return doc, nil
}

// ListByUser lists documents newest-first with the property join applied.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Document, error) {
	const query = `
SELECT d.id, d.user_id, d.name, d.content, d.analysis, d.property_id, d.document_type, d.mime_type, d.size_bytes, d.storage_key, d.created_at,
       p.id, p.name, p.address
FROM documents d
LEFT JOIN properties p ON p.id = d.property_id
WHERE d.user_id = $1
ORDER BY d.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var analysis, propertyID, documentType, storageKey sql.NullString
		var propID, propName, propAddress sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Name,
			&doc.Content,
			&analysis,
			&propertyID,
			&documentType,
			&doc.MimeType,
			&doc.SizeBytes,
			&storageKey,
			&doc.CreatedAt,
			&propID,
			&propName,
			&propAddress,
		); err != nil {
			return nil, err
		}
		doc.Analysis = analysis.String
		doc.PropertyID = propertyID.String
		doc.DocumentType = documentType.String
		doc.StorageKey = storageKey.String
		if propID.Valid {
			doc.Property = &PropertyRef{
				ID:      propID.String,
				Name:    propName.String,
				Address: propAddress.String,
			}
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateAnalysis stores the generated analysis for a document.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, userId, documentID, analysis string) error {
	const query = `
UPDATE documents
SET analysis = $1
WHERE user_id = $2 AND id = $3`
	res, err := r.DB.ExecContext(ctx, query, analysis, userId, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userId, documentID string) error {
	const query = `
DELETE FROM documents
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
