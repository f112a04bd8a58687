// Package outline renders a document's node tree in the terminal. Rows are
// drawn through a windowed viewport, so only the nodes intersecting the
// visible area (plus overscan) are materialized per frame regardless of how
// large the document grows.
package outline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/store"
	"github.com/Dasen603/typeset/internal/virtlist"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeRename
)

type nodesLoadedMsg struct {
	nodes []store.Node
}

type previewMsg struct {
	nodeID  int64
	content string
}

type errMsg struct {
	err error
}

type OutlineModel struct {
	state    *state.State
	doc      store.Document
	vp       *virtlist.Viewport[store.Node]
	keys     *outlineKeyMap
	input    inputModel
	mode     inputMode
	cursor   int
	width    int
	height   int
	preview  string
	status   string
	rowH     int
	overscan int
}

func NewOutlineModel(s *state.State, doc store.Document) (OutlineModel, error) {
	rowH := s.Config.RowHeight
	overscan := s.Config.Overscan

	vp, err := virtlist.New(nil, nodeKey, rowH, 0, overscan)
	if err != nil {
		return OutlineModel{}, err
	}

	return OutlineModel{
		state:    s,
		doc:      doc,
		vp:       vp,
		keys:     newOutlineKeyMap(),
		input:    newInputModel(),
		rowH:     rowH,
		overscan: overscan,
	}, nil
}

func (m OutlineModel) Init() tea.Cmd {
	return tea.Batch(m.loadNodes(), m.state.Watcher.Start())
}

func (m OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, v := appStyle.GetFrameSize()
		if err := m.vp.Resize(m.listHeight(msg.Height - v)); err == nil {
			m.vp.Scroll(m.vp.ScrollOffset())
		}
		return m, nil

	case nodesLoadedMsg:
		m.vp.SetItems(msg.nodes)
		if m.cursor >= m.vp.Len() {
			m.cursor = m.vp.Len() - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureVisible()
		return m, m.loadPreview()

	case previewMsg:
		if n, ok := m.selectedNode(); ok && n.ID == msg.nodeID {
			m.preview = msg.content
		}
		return m, nil

	case state.StoreChangedMsg:
		return m, tea.Batch(m.loadNodes(), m.state.Watcher.Start())

	case state.StoreWatcherErrMsg:
		m.status = fmt.Sprintf("watcher error: %v", msg.Err)
		return m, m.state.Watcher.Start()

	case errMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m OutlineModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		return m.moveCursor(m.cursor - 1)

	case key.Matches(msg, m.keys.down):
		return m.moveCursor(m.cursor + 1)

	case key.Matches(msg, m.keys.pageUp):
		return m.moveCursor(m.cursor - m.pageSize())

	case key.Matches(msg, m.keys.pageDown):
		return m.moveCursor(m.cursor + m.pageSize())

	case key.Matches(msg, m.keys.top):
		return m.moveCursor(0)

	case key.Matches(msg, m.keys.bottom):
		return m.moveCursor(m.vp.Len() - 1)

	case key.Matches(msg, m.keys.addNode):
		m.mode = modeAdd
		m.input.setPrompt("New section title")
		return m, m.input.focus()

	case key.Matches(msg, m.keys.rename):
		n, ok := m.selectedNode()
		if !ok {
			return m, nil
		}
		m.mode = modeRename
		m.input.setPrompt("Rename node")
		m.input.setValue(n.Title)
		return m, m.input.focus()

	case key.Matches(msg, m.keys.deleteNode):
		n, ok := m.selectedNode()
		if !ok {
			return m, nil
		}
		return m, m.deleteNode(n.ID)

	case key.Matches(msg, m.keys.yank):
		return m, m.yankContent()
	}

	return m, nil
}

func (m OutlineModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.mode = modeBrowse
		m.input.reset()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		title := strings.TrimSpace(m.input.value())
		mode := m.mode
		m.mode = modeBrowse
		m.input.reset()
		if title == "" {
			return m, nil
		}
		if mode == modeAdd {
			return m, m.createNode(title)
		}
		if n, ok := m.selectedNode(); ok {
			return m, m.renameNode(n.ID, title)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.update(msg)
	return m, cmd
}

func (m OutlineModel) moveCursor(to int) (tea.Model, tea.Cmd) {
	if to < 0 {
		to = 0
	}
	if to > m.vp.Len()-1 {
		to = m.vp.Len() - 1
	}
	if to < 0 || to == m.cursor {
		return m, nil
	}

	m.cursor = to
	m.ensureVisible()
	return m, m.loadPreview()
}

// ensureVisible scrolls just far enough that the cursor row is fully inside
// the viewport.
func (m *OutlineModel) ensureVisible() {
	offset := m.vp.ScrollOffset()
	rowTop := m.cursor * m.rowH
	rowBottom := rowTop + m.rowH

	extent := m.viewExtent()
	if rowTop < offset {
		offset = rowTop
	} else if extent > 0 && rowBottom > offset+extent {
		offset = rowBottom - extent
	}
	if offset < 0 {
		offset = 0
	}
	m.vp.Scroll(offset)
}

func (m OutlineModel) viewExtent() int {
	_, v := appStyle.GetFrameSize()
	return m.listHeight(m.height - v)
}

// listHeight reserves two lines of chrome above and below the row area.
func (m OutlineModel) listHeight(available int) int {
	h := available - 4
	if h < 0 {
		h = 0
	}
	return h
}

func (m OutlineModel) pageSize() int {
	if m.rowH <= 0 {
		return 1
	}
	page := m.viewExtent() / m.rowH
	if page < 1 {
		page = 1
	}
	return page
}

func (m OutlineModel) selectedNode() (store.Node, bool) {
	if m.cursor < 0 || m.cursor >= m.vp.Len() {
		return store.Node{}, false
	}
	for _, e := range m.vp.VisibleSlice() {
		if e.Index == m.cursor {
			return e.Item, true
		}
	}
	return store.Node{}, false
}

func (m OutlineModel) View() string {
	listWidth := m.width/2 - 4
	if listWidth < 20 {
		listWidth = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.doc.Title))
	b.WriteString("\n")
	b.WriteString(statusStyle(fmt.Sprintf("%d nodes", m.vp.Len())))
	b.WriteString("\n")

	offset := m.vp.ScrollOffset()
	extent := m.viewExtent()
	for _, e := range m.vp.VisibleSlice() {
		top := e.Offset - offset
		if top+m.rowH <= 0 || top >= extent {
			// Overscan rows sit outside the drawable area.
			continue
		}
		b.WriteString(renderRow(e.Item, listWidth, e.Index == m.cursor))
		b.WriteString("\n")
	}

	if m.mode != modeBrowse {
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(m.input.view()))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle(m.status))
	}

	listSection := outlineStyle.Render(b.String())
	previewSection := previewStyle.Render(
		lipgloss.NewStyle().
			Height(extent).
			MaxHeight(extent + 2).
			Render(fmt.Sprintf("%s\n%s", titleStyle.Render("Preview"), m.preview)),
	)

	return appStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, listSection, previewSection))
}

func (m OutlineModel) loadNodes() tea.Cmd {
	return func() tea.Msg {
		nodes, err := m.state.Store.ListNodes(context.Background(), m.doc.ID)
		if err != nil {
			return errMsg{err}
		}
		return nodesLoadedMsg{nodes: nodes}
	}
}

func (m OutlineModel) loadPreview() tea.Cmd {
	n, ok := m.selectedNode()
	if !ok {
		return nil
	}

	width := m.width / 2
	if width < 20 {
		width = 80
	}

	return func() tea.Msg {
		c, err := m.state.Store.GetContent(context.Background(), n.ID)
		if err != nil {
			if store.IsNotFound(err) {
				return previewMsg{nodeID: n.ID, content: ""}
			}
			return errMsg{err}
		}

		r, _ := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dracula"),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(termenv.ANSI256),
		)
		rendered, err := r.Render(c.ContentJSON)
		if err != nil {
			return previewMsg{nodeID: n.ID, content: c.ContentJSON}
		}
		return previewMsg{nodeID: n.ID, content: rendered}
	}
}

func (m OutlineModel) createNode(title string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		order, err := m.state.Store.NextOrderIndex(ctx, m.doc.ID)
		if err != nil {
			return errMsg{err}
		}
		_, err = m.state.Store.CreateNode(ctx, store.NewNode{
			DocumentID: m.doc.ID,
			NodeType:   store.NodeTypeSection,
			Title:      title,
			OrderIndex: order,
		})
		if err != nil {
			return errMsg{err}
		}
		return m.loadNodes()()
	}
}

func (m OutlineModel) renameNode(id int64, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.state.Store.UpdateNode(context.Background(), id, store.NodeUpdate{Title: &title})
		if err != nil {
			return errMsg{err}
		}
		return m.loadNodes()()
	}
}

func (m OutlineModel) deleteNode(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.state.Store.DeleteNode(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return m.loadNodes()()
	}
}

func (m OutlineModel) yankContent() tea.Cmd {
	n, ok := m.selectedNode()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		c, err := m.state.Store.GetContent(context.Background(), n.ID)
		if err != nil {
			return errMsg{err}
		}
		if err := clipboard.WriteAll(c.ContentJSON); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func Run(s *state.State, doc store.Document) error {
	originalState, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Failed to get original terminal state: %v", err)
	}

	defer func() {
		if err := term.Restore(int(os.Stdin.Fd()), originalState); err != nil {
			log.Fatalf("Failed to restore original terminal state: %v", err)
		}
	}()

	model, err := NewOutlineModel(s, doc)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			os.Exit(0)
		}
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
