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
INSERT INTO documents (id, user_id, filename, extracted_text, explanation, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Filename,
		doc.ExtractedText,
		doc.Explanation,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, filename, extracted_text, explanation, created_at
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	var doc Document
	err := r.DB.QueryRowContext(ctx, query, userID, documentID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.ExtractedText,
		&doc.Explanation,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists a user's documents, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
SELECT id, user_id, filename, extracted_text, explanation, created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Filename,
			&doc.ExtractedText,
			&doc.Explanation,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document conditionally on ownership and returns the
// affected row count.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) (int64, error) {
	const query = `
DELETE FROM documents
WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ Repo = (*PGRepo)(nil)
