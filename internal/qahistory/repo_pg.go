package qahistory

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a new history entry.
func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO document_qa_history (id, document_id, question, answer, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.DocumentID,
		entry.Question,
		entry.Answer,
		entry.CreatedAt,
	)
	return err
}

// ListByDocument returns a document's entries, oldest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID string) ([]Entry, error) {
	const query = `
SELECT id, document_id, question, answer, created_at
FROM document_qa_history
WHERE document_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByDocuments returns entries grouped by document, oldest first per group.
func (r *PGRepo) ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]Entry, error) {
	out := make(map[string][]Entry, len(documentIDs))
	if len(documentIDs) == 0 {
		return out, nil
	}

	const query = `
SELECT id, document_id, question, answer, created_at
FROM document_qa_history
WHERE document_id = ANY($1)
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, documentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out[e.DocumentID] = append(out[e.DocumentID], e)
	}
	return out, nil
}

// DeleteByDocument removes a document's entries. The FK cascade on document
// deletion usually gets there first; this keeps non-cascading callers correct.
func (r *PGRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	const query = `
DELETE FROM document_qa_history
WHERE document_id = $1`
	_, err := r.DB.ExecContext(ctx, query, documentID)
	return err
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Question, &e.Answer, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
