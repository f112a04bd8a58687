// Package importer converts markdown files into stored documents. Headings
// become section nodes, fenced math blocks become equations, images become
// figures, and the remaining prose attaches to the preceding section.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Dasen603/typeset/internal/store"
)

type parsedNode struct {
	nodeType string
	title    string
	indent   int64
	imageURL string
	content  strings.Builder
}

// Import parses the markdown file at path and persists it as a new
// document, returning the created document.
func Import(ctx context.Context, s *store.Store, path string) (store.Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return store.Document{}, fmt.Errorf("error reading file: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parsed := parse(source, &title)

	doc, err := s.CreateDocument(ctx, title)
	if err != nil {
		return store.Document{}, err
	}

	for i, p := range parsed {
		in := store.NewNode{
			DocumentID:  doc.ID,
			NodeType:    p.nodeType,
			Title:       p.title,
			OrderIndex:  int64(i),
			IndentLevel: p.indent,
		}
		if p.imageURL != "" {
			url := p.imageURL
			in.ImageURL = &url
		}

		n, err := s.CreateNode(ctx, in)
		if err != nil {
			return store.Document{}, err
		}

		if body := strings.TrimSpace(p.content.String()); body != "" {
			if _, err := s.SaveContent(ctx, n.ID, body); err != nil {
				return store.Document{}, err
			}
		}
	}

	return doc, nil
}

// parse walks the markdown AST and flattens it into an ordered node list.
// A level-one heading at the top of the file names the document instead of
// producing a node.
func parse(source []byte, docTitle *string) []*parsedNode {
	parser := goldmark.DefaultParser()
	reader := text.NewReader(source)
	document := parser.Parse(reader)

	var nodes []*parsedNode
	sawTitle := false

	current := func() *parsedNode {
		if len(nodes) == 0 {
			nodes = append(nodes, &parsedNode{
				nodeType: store.NodeTypeSection,
				title:    "Introduction",
			})
		}
		return nodes[len(nodes)-1]
	}

	ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}

			switch n := n.(type) {
			case *ast.Heading:
				heading := strings.TrimSpace(string(n.Text(source)))
				if n.Level == 1 && !sawTitle && len(nodes) == 0 {
					sawTitle = true
					if heading != "" {
						*docTitle = heading
					}
					return ast.WalkSkipChildren, nil
				}

				indent := int64(n.Level - 2)
				if indent < 0 {
					indent = 0
				}
				nodes = append(nodes, &parsedNode{
					nodeType: store.NodeTypeSection,
					title:    heading,
					indent:   indent,
				})
				return ast.WalkSkipChildren, nil
			case *ast.FencedCodeBlock:
				lang := string(n.Language(source))
				body := blockText(n, source)
				if lang == "math" || lang == "latex" {
					eq := &parsedNode{
						nodeType: store.NodeTypeEquation,
						title:    "Equation",
					}
					eq.content.WriteString(body)
					nodes = append(nodes, eq)
				} else {
					cur := current()
					cur.content.WriteString("```" + lang + "\n" + body + "```\n\n")
				}
				return ast.WalkSkipChildren, nil
			case *ast.Image:
				nodes = append(nodes, &parsedNode{
					nodeType: store.NodeTypeFigure,
					title:    strings.TrimSpace(string(n.Text(source))),
					imageURL: string(n.Destination),
				})
				return ast.WalkSkipChildren, nil
			case *ast.Paragraph:
				// Paragraphs that wrap a lone image are handled above.
				if img, ok := n.FirstChild().(*ast.Image); ok && n.ChildCount() == 1 {
					nodes = append(nodes, &parsedNode{
						nodeType: store.NodeTypeFigure,
						title:    strings.TrimSpace(string(img.Text(source))),
						imageURL: string(img.Destination),
					})
					return ast.WalkSkipChildren, nil
				}

				cur := current()
				cur.content.WriteString(string(n.Text(source)) + "\n\n")
				return ast.WalkSkipChildren, nil
			case *ast.ListItem:
				cur := current()
				cur.content.WriteString("- " + strings.TrimSpace(string(n.Text(source))) + "\n")
				return ast.WalkSkipChildren, nil
			}

			return ast.WalkContinue, nil
		},
	)

	for _, p := range nodes {
		if p.nodeType == store.NodeTypeFigure && p.title == "" {
			p.title = "Figure"
		}
	}

	return nodes
}

func blockText(n *ast.FencedCodeBlock, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(source))
	}
	return b.String()
}
