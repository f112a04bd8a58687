package outline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dasen603/typeset/internal/config"
	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/store"
)

func newTestModel(t *testing.T, nodeCount int) (OutlineModel, *store.Store) {
	t.Helper()

	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	doc, err := s.CreateDocument(ctx, "Large Document")
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	for i := 0; i < nodeCount; i++ {
		_, err := s.CreateNode(ctx, store.NewNode{
			DocumentID: doc.ID,
			NodeType:   store.NodeTypeSection,
			Title:      fmt.Sprintf("Section %03d", i),
			OrderIndex: int64(i),
		})
		if err != nil {
			t.Fatalf("failed to create node %d: %v", i, err)
		}
	}

	watcher, err := state.NewStoreWatcher(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	t.Cleanup(func() { watcher.Close() })

	st := &state.State{
		Config:  &config.Config{RowHeight: 1, Overscan: 2},
		Store:   s,
		Watcher: watcher,
	}

	m, err := NewOutlineModel(st, doc)
	if err != nil {
		t.Fatalf("NewOutlineModel failed: %v", err)
	}

	return m, s
}

func loadAndSize(t *testing.T, m OutlineModel, width, height int) OutlineModel {
	t.Helper()

	msg := m.loadNodes()()
	loaded, ok := msg.(nodesLoadedMsg)
	if !ok {
		t.Fatalf("expected nodesLoadedMsg, got %T", msg)
	}

	next, _ := m.Update(loaded)
	m = next.(OutlineModel)

	next, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return next.(OutlineModel)
}

func TestOutlineWindowsLargeDocument(t *testing.T) {
	m, _ := newTestModel(t, 500)
	m = loadAndSize(t, m, 120, 30)

	if m.vp.Len() != 500 {
		t.Fatalf("expected 500 nodes loaded, got %d", m.vp.Len())
	}

	win := m.vp.Window()
	if win.Start != 0 {
		t.Errorf("expected window to start at 0, got %d", win.Start)
	}
	if win.Len() >= 500 {
		t.Errorf("expected a partial window, got %d rows", win.Len())
	}
	if m.vp.TotalExtent() != 500 {
		t.Errorf("expected total extent 500 rows, got %d", m.vp.TotalExtent())
	}
}

func TestOutlineCursorMovementScrolls(t *testing.T) {
	m, _ := newTestModel(t, 500)
	m = loadAndSize(t, m, 120, 30)

	// Walk past the bottom of the first screen.
	for i := 0; i < 60; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(OutlineModel)
	}

	if m.cursor != 60 {
		t.Fatalf("expected cursor at 60, got %d", m.cursor)
	}
	if m.vp.ScrollOffset() == 0 {
		t.Error("expected viewport to have scrolled")
	}
	if !m.vp.Window().Contains(60) {
		t.Errorf("expected window %v to contain cursor row", m.vp.Window())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = next.(OutlineModel)
	if m.cursor != 499 {
		t.Errorf("expected cursor at last node, got %d", m.cursor)
	}
	if !m.vp.Window().Contains(499) {
		t.Errorf("expected window %v to contain last row", m.vp.Window())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = next.(OutlineModel)
	if m.cursor != 0 || m.vp.ScrollOffset() != 0 {
		t.Errorf("expected cursor and offset back at 0, got %d / %d", m.cursor, m.vp.ScrollOffset())
	}
}

func TestOutlineViewRendersOnlyVisibleRows(t *testing.T) {
	m, _ := newTestModel(t, 500)
	m = loadAndSize(t, m, 120, 30)

	out := m.View()
	if !strings.Contains(out, "Section 000") {
		t.Error("expected first section in view")
	}
	if strings.Contains(out, "Section 400") {
		t.Error("did not expect far-away section in view")
	}
	if !strings.Contains(out, "500 nodes") {
		t.Error("expected node count in chrome")
	}
}

func TestOutlineRenameFlow(t *testing.T) {
	m, s := newTestModel(t, 3)
	m = loadAndSize(t, m, 120, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	m = next.(OutlineModel)
	if m.mode != modeRename {
		t.Fatalf("expected rename mode, got %d", m.mode)
	}
	if m.input.value() != "Section 000" {
		t.Fatalf("expected input primed with current title, got %q", m.input.value())
	}

	m.input.setValue("Preface")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(OutlineModel)
	if m.mode != modeBrowse {
		t.Fatal("expected browse mode after submit")
	}
	if cmd == nil {
		t.Fatal("expected a rename command")
	}

	if msg := cmd(); msg == nil {
		t.Fatal("expected reload message from rename command")
	}

	nodes, err := s.ListNodes(context.Background(), m.doc.ID)
	if err != nil {
		t.Fatalf("ListNodes failed: %v", err)
	}
	if nodes[0].Title != "Preface" {
		t.Errorf("expected renamed node, got %q", nodes[0].Title)
	}
}

func TestOutlineAddCancel(t *testing.T) {
	m, _ := newTestModel(t, 3)
	m = loadAndSize(t, m, 120, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = next.(OutlineModel)
	if m.mode != modeAdd {
		t.Fatalf("expected add mode, got %d", m.mode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(OutlineModel)
	if m.mode != modeBrowse {
		t.Fatal("expected browse mode after cancel")
	}
	if m.vp.Len() != 3 {
		t.Errorf("expected node count unchanged, got %d", m.vp.Len())
	}
}

func TestRenderRowGlyphs(t *testing.T) {
	url := "/uploads/fig.png"
	cases := []struct {
		node store.Node
		want string
	}{
		{store.Node{NodeType: store.NodeTypeSection, Title: "Intro"}, "§"},
		{store.Node{NodeType: store.NodeTypeEquation, Title: "Euler"}, "∑"},
		{store.Node{NodeType: store.NodeTypeFigure, Title: "Plot", ImageURL: &url}, "▣"},
	}

	for _, tc := range cases {
		row := renderRow(tc.node, 40, false)
		if !strings.Contains(row, tc.want) {
			t.Errorf("expected %s row to contain %q, got %q", tc.node.NodeType, tc.want, row)
		}
		if !strings.Contains(row, tc.node.Title) {
			t.Errorf("expected row to contain title %q", tc.node.Title)
		}
	}
}

func TestRenderRowIndents(t *testing.T) {
	flat := renderRow(store.Node{NodeType: store.NodeTypeSection, Title: "A"}, 40, false)
	nested := renderRow(store.Node{NodeType: store.NodeTypeSection, Title: "A", IndentLevel: 2}, 40, false)
	if len(nested) <= len(flat) {
		t.Error("expected nested row to carry indentation")
	}
}
