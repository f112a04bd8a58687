package outline

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/Dasen603/typeset/internal/store"
)

func nodeGlyph(nodeType string) string {
	switch nodeType {
	case store.NodeTypeEquation:
		return "∑"
	case store.NodeTypeFigure:
		return "▣"
	default:
		return "§"
	}
}

// renderRow draws a single outline row at the given width. The row text is
// indented two spaces per nesting level and truncated to fit.
func renderRow(n store.Node, width int, selected bool) string {
	indent := strings.Repeat("  ", int(n.IndentLevel))
	line := fmt.Sprintf("%s%s %s", indent, glyphStyle.Render(nodeGlyph(n.NodeType)), n.Title)

	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}

	if selected {
		return selectedRowStyle.Render(line)
	}
	return rowStyle.Render(line)
}

func nodeKey(n store.Node, _ int) string {
	return fmt.Sprintf("node-%d", n.ID)
}
