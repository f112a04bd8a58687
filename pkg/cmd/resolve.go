package cmd

import (
	"context"
	"strconv"

	"github.com/Dasen603/typeset/internal/fzf"
	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/store"
)

// ResolveDocument turns a command argument into a document. A numeric
// argument is treated as a document id; anything else seeds the fuzzy
// picker as a query. With no argument the picker opens unfiltered.
func ResolveDocument(ctx context.Context, s *state.State, args []string, header string) (store.Document, error) {
	if len(args) > 0 {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			return s.Store.GetDocument(ctx, id)
		}
		finder := fzf.NewFuzzyFinder(s.Store, header)
		return finder.RunWithQuery(ctx, args[0])
	}

	finder := fzf.NewFuzzyFinder(s.Store, header)
	return finder.Run(ctx)
}
