// Package fzf provides fuzzy selection over stored documents with a
// rendered preview of each document's outline.
package fzf

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Dasen603/typeset/internal/export"
	"github.com/Dasen603/typeset/internal/store"
)

// FuzzyFinder encapsulates the document picker.
type FuzzyFinder struct {
	store  *store.Store
	Header string
	docs   []store.Document
}

func NewFuzzyFinder(s *store.Store, header string) *FuzzyFinder {
	return &FuzzyFinder{store: s, Header: header}
}

// Run presents the picker and returns the selected document.
func (f *FuzzyFinder) Run(ctx context.Context) (store.Document, error) {
	return f.RunWithQuery(ctx, "")
}

func (f *FuzzyFinder) RunWithQuery(ctx context.Context, query string) (store.Document, error) {
	docs, err := f.store.ListDocuments(ctx)
	if err != nil {
		return store.Document{}, fmt.Errorf("error listing documents: %w", err)
	}
	if len(docs) == 0 {
		return store.Document{}, fmt.Errorf("no documents to select from")
	}

	f.docs = docs

	idx, err := f.fuzzySelect(ctx, query)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return store.Document{}, fmt.Errorf("no document selected")
		}
		return store.Document{}, err
	}

	return f.docs[idx], nil
}

func (f *FuzzyFinder) fuzzySelect(ctx context.Context, query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			return f.renderPreview(ctx, i)
		}),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.docs, func(i int) string {
		return fmt.Sprintf("%s (updated %s)", f.docs[i].Title, f.docs[i].UpdatedAt)
	}, options...)
}

func (f *FuzzyFinder) renderPreview(ctx context.Context, i int) string {
	if i == -1 {
		return ""
	}

	doc := f.docs[i]
	nodes, err := f.store.ListNodes(ctx, doc.ID)
	if err != nil {
		return "Error loading outline"
	}

	contents := make(map[int64]string, len(nodes))
	for _, n := range nodes {
		c, err := f.store.GetContent(ctx, n.ID)
		if err != nil {
			continue
		}
		contents[n.ID] = c.ContentJSON
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(export.RenderMarkdown(doc, nodes, contents))
	if err != nil {
		return "Error rendering preview"
	}

	return markdown
}
