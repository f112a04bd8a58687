package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetContent returns the content row for a node, or ErrNotFound if the node
// has never been written to.
func (s *Store) GetContent(ctx context.Context, nodeID int64) (Content, error) {
	var c Content
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, node_id, content_json, updated_at FROM content WHERE node_id = ?`,
		nodeID,
	).Scan(&c.ID, &c.NodeID, &c.ContentJSON, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Content{}, fmt.Errorf("content for node %d: %w", nodeID, ErrNotFound)
	}
	if err != nil {
		return Content{}, err
	}

	return c, nil
}

// SaveContent creates or replaces a node's content.
func (s *Store) SaveContent(ctx context.Context, nodeID int64, contentJSON string) (Content, error) {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO content (node_id, content_json) VALUES (?, ?)
		 ON CONFLICT(node_id) DO UPDATE SET content_json = ?, updated_at = CURRENT_TIMESTAMP`,
		nodeID,
		contentJSON,
		contentJSON,
	)
	if err != nil {
		return Content{}, fmt.Errorf("failed to save content for node %d: %w", nodeID, err)
	}

	return s.GetContent(ctx, nodeID)
}
