package open

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	cmdpkg "github.com/Dasen603/typeset/pkg/cmd"

	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/tui/outline"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [id or query]",
		Aliases: []string{"edit"},
		Short:   "Open a document's outline.",
		Long: heredoc.Doc(`
			This command opens a document in the outline view. Pass a numeric
			document id to open it directly, or any other text to filter the
			fuzzy picker. With no argument the picker shows all documents.

			Example:
			  typeset open 3
			  typeset open thesis
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := cmdpkg.ResolveDocument(cmd.Context(), s, args, "Open document")
			if err != nil {
				return err
			}

			return outline.Run(s, doc)
		},
	}

	return cmd
}
