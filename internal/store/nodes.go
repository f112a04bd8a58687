package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const nodeColumns = `id, document_id, parent_id, node_type, title, order_index, indent_level, image_url, created_at, updated_at`

// NewNode carries the caller-supplied fields for node creation.
type NewNode struct {
	DocumentID  int64   `json:"document_id"`
	ParentID    *int64  `json:"parent_id"`
	NodeType    string  `json:"node_type"`
	Title       string  `json:"title"`
	OrderIndex  int64   `json:"order_index"`
	IndentLevel int64   `json:"indent_level"`
	ImageURL    *string `json:"image_url"`
}

// NodeUpdate is a partial update; nil fields are left untouched.
type NodeUpdate struct {
	Title       *string `json:"title"`
	OrderIndex  *int64  `json:"order_index"`
	IndentLevel *int64  `json:"indent_level"`
	ParentID    *int64  `json:"parent_id"`
	ImageURL    *string `json:"image_url"`
}

// ListNodes returns a document's outline as a flat slice ordered by
// order_index, which is the order the viewport renders.
func (s *Store) ListNodes(ctx context.Context, documentID int64) ([]Node, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+nodeColumns+` FROM nodes WHERE document_id = ? ORDER BY order_index`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes for document %d: %w", documentID, err)
	}
	defer rows.Close()

	nodes := []Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	return nodes, rows.Err()
}

func (s *Store) CreateNode(ctx context.Context, in NewNode) (Node, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO nodes (document_id, parent_id, node_type, title, order_index, indent_level, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.DocumentID,
		in.ParentID,
		in.NodeType,
		in.Title,
		in.OrderIndex,
		in.IndentLevel,
		in.ImageURL,
	)
	if err != nil {
		return Node{}, fmt.Errorf("failed to create node: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Node{}, err
	}

	return s.GetNode(ctx, id)
}

func (s *Store) GetNode(ctx context.Context, id int64) (Node, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+nodeColumns+` FROM nodes WHERE id = ?`,
		id,
	)

	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Node{}, err
	}

	return n, nil
}

// UpdateNode applies the non-nil fields of upd, each touching updated_at.
func (s *Store) UpdateNode(ctx context.Context, id int64, upd NodeUpdate) (Node, error) {
	set := func(column string, value any) error {
		_, err := s.db.ExecContext(
			ctx,
			`UPDATE nodes SET `+column+` = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			value,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update node %d: %w", id, err)
		}
		return nil
	}

	if upd.Title != nil {
		if err := set("title", *upd.Title); err != nil {
			return Node{}, err
		}
	}
	if upd.OrderIndex != nil {
		if err := set("order_index", *upd.OrderIndex); err != nil {
			return Node{}, err
		}
	}
	if upd.IndentLevel != nil {
		if err := set("indent_level", *upd.IndentLevel); err != nil {
			return Node{}, err
		}
	}
	if upd.ParentID != nil {
		if err := set("parent_id", *upd.ParentID); err != nil {
			return Node{}, err
		}
	}
	if upd.ImageURL != nil {
		if err := set("image_url", *upd.ImageURL); err != nil {
			return Node{}, err
		}
	}

	return s.GetNode(ctx, id)
}

func (s *Store) DeleteNode(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete node %d: %w", id, err)
	}
	return nil
}

// NextOrderIndex returns an order_index that places a new node at the end of
// the document's outline.
func (s *Store) NextOrderIndex(ctx context.Context, documentID int64) (int64, error) {
	var next sql.NullInt64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT MAX(order_index) + 1 FROM nodes WHERE document_id = ?`,
		documentID,
	).Scan(&next)
	if err != nil {
		return 0, err
	}
	if !next.Valid {
		return 0, nil
	}
	return next.Int64, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (Node, error) {
	var n Node
	err := row.Scan(
		&n.ID,
		&n.DocumentID,
		&n.ParentID,
		&n.NodeType,
		&n.Title,
		&n.OrderIndex,
		&n.IndentLevel,
		&n.ImageURL,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}
