package store

import (
	"time"

	"github.com/araddon/dateparse"
)

// Node types understood by the editor. The column is free-form text so old
// databases with other values keep loading; these are what the UI renders
// with dedicated glyphs.
const (
	NodeTypeSection  = "section"
	NodeTypeEquation = "equation"
	NodeTypeFigure   = "figure"
)

type Document struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Node is one outline entry of a document. OrderIndex defines the rendering
// order within the document; IndentLevel is the visual nesting depth, kept
// separate from ParentID so a flat ordered list can be rendered without
// walking the tree.
type Node struct {
	ID          int64   `json:"id"`
	DocumentID  int64   `json:"document_id"`
	ParentID    *int64  `json:"parent_id"`
	NodeType    string  `json:"node_type"`
	Title       string  `json:"title"`
	OrderIndex  int64   `json:"order_index"`
	IndentLevel int64   `json:"indent_level"`
	ImageURL    *string `json:"image_url"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type Content struct {
	ID          int64  `json:"id"`
	NodeID      int64  `json:"node_id"`
	ContentJSON string `json:"content_json"`
	UpdatedAt   string `json:"updated_at"`
}

// ModifiedTime parses the document's updated_at column, which SQLite stores
// as a DATETIME string. The zero time is returned for unparseable values.
func (d Document) ModifiedTime() time.Time {
	t, err := dateparse.ParseAny(d.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (n Node) ModifiedTime() time.Time {
	t, err := dateparse.ParseAny(n.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
