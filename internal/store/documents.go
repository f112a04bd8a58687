package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ListDocuments returns all documents ordered by most recently updated.
func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, title, created_at, updated_at FROM documents ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

func (s *Store) CreateDocument(ctx context.Context, title string) (Document, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO documents (title) VALUES (?)`, title)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Document{}, err
	}

	return s.GetDocument(ctx, id)
}

func (s *Store) GetDocument(ctx context.Context, id int64) (Document, error) {
	var d Document
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, title, created_at, updated_at FROM documents WHERE id = ?`,
		id,
	).Scan(&d.ID, &d.Title, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Document{}, err
	}

	return d, nil
}

func (s *Store) UpdateDocument(ctx context.Context, id int64, title string) (Document, error) {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE documents SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title,
		id,
	)
	if err != nil {
		return Document{}, fmt.Errorf("failed to update document %d: %w", id, err)
	}

	return s.GetDocument(ctx, id)
}

func (s *Store) DeleteDocument(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	return nil
}

// TouchDocument bumps updated_at, used after node or content edits so the
// document list sorts recently edited work first.
func (s *Store) TouchDocument(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE documents SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		id,
	)
	return err
}
