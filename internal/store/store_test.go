package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "typeset.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestDocumentLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "Thesis")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	if doc.ID == 0 {
		t.Fatalf("expected non-zero document id")
	}
	if doc.Title != "Thesis" {
		t.Fatalf("expected title Thesis, got %q", doc.Title)
	}

	doc, err = s.UpdateDocument(ctx, doc.ID, "Dissertation")
	if err != nil {
		t.Fatalf("failed to update document: %v", err)
	}
	if doc.Title != "Dissertation" {
		t.Fatalf("expected renamed title, got %q", doc.Title)
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	if err := s.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("failed to delete document: %v", err)
	}
	if _, err := s.GetDocument(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListNodesFollowsOrderIndex(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "Paper")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	// Insert out of order on purpose.
	for _, n := range []NewNode{
		{DocumentID: doc.ID, NodeType: NodeTypeSection, Title: "Methods", OrderIndex: 1},
		{DocumentID: doc.ID, NodeType: NodeTypeSection, Title: "Results", OrderIndex: 2},
		{DocumentID: doc.ID, NodeType: NodeTypeSection, Title: "Introduction", OrderIndex: 0},
	} {
		if _, err := s.CreateNode(ctx, n); err != nil {
			t.Fatalf("failed to create node: %v", err)
		}
	}

	nodes, err := s.ListNodes(ctx, doc.ID)
	if err != nil {
		t.Fatalf("failed to list nodes: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].Title != "Introduction" || nodes[2].Title != "Results" {
		t.Fatalf(
			"expected order Introduction..Results, got %q..%q",
			nodes[0].Title, nodes[2].Title,
		)
	}

	next, err := s.NextOrderIndex(ctx, doc.ID)
	if err != nil {
		t.Fatalf("failed to compute next order index: %v", err)
	}
	if next != 3 {
		t.Fatalf("expected next order index 3, got %d", next)
	}
}

func TestUpdateNodeIsPartial(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "Paper")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	node, err := s.CreateNode(ctx, NewNode{
		DocumentID: doc.ID,
		NodeType:   NodeTypeEquation,
		Title:      "Euler",
		OrderIndex: 0,
	})
	if err != nil {
		t.Fatalf("failed to create node: %v", err)
	}

	title := "Euler's identity"
	indent := int64(2)
	node, err = s.UpdateNode(ctx, node.ID, NodeUpdate{Title: &title, IndentLevel: &indent})
	if err != nil {
		t.Fatalf("failed to update node: %v", err)
	}

	if node.Title != "Euler's identity" {
		t.Fatalf("expected updated title, got %q", node.Title)
	}
	if node.IndentLevel != 2 {
		t.Fatalf("expected indent level 2, got %d", node.IndentLevel)
	}
	if node.OrderIndex != 0 {
		t.Fatalf("expected order index untouched, got %d", node.OrderIndex)
	}
	if node.NodeType != NodeTypeEquation {
		t.Fatalf("expected node type untouched, got %q", node.NodeType)
	}
}

func TestContentUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "Paper")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	node, err := s.CreateNode(ctx, NewNode{
		DocumentID: doc.ID,
		NodeType:   NodeTypeSection,
		Title:      "Abstract",
	})
	if err != nil {
		t.Fatalf("failed to create node: %v", err)
	}

	if _, err := s.GetContent(ctx, node.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	c, err := s.SaveContent(ctx, node.ID, `{"markdown":"first"}`)
	if err != nil {
		t.Fatalf("failed to save content: %v", err)
	}
	if c.ContentJSON != `{"markdown":"first"}` {
		t.Fatalf("unexpected content: %q", c.ContentJSON)
	}

	c, err = s.SaveContent(ctx, node.ID, `{"markdown":"second"}`)
	if err != nil {
		t.Fatalf("failed to overwrite content: %v", err)
	}
	if c.ContentJSON != `{"markdown":"second"}` {
		t.Fatalf("expected overwritten content, got %q", c.ContentJSON)
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc, err := s.CreateDocument(ctx, "Paper")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	node, err := s.CreateNode(ctx, NewNode{
		DocumentID: doc.ID,
		NodeType:   NodeTypeSection,
		Title:      "Body",
	})
	if err != nil {
		t.Fatalf("failed to create node: %v", err)
	}
	if _, err := s.SaveContent(ctx, node.ID, `{}`); err != nil {
		t.Fatalf("failed to save content: %v", err)
	}

	if err := s.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("failed to delete document: %v", err)
	}

	if _, err := s.GetNode(ctx, node.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected node to cascade, got %v", err)
	}
	if _, err := s.GetContent(ctx, node.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected content to cascade, got %v", err)
	}
}
