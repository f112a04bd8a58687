package importDoc

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Dasen603/typeset/internal/importer"
	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/tui/outline"
)

var openFlag bool

func NewCmdImport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import markdown files as documents.",
		Long: heredoc.Doc(`
			This command imports one or more markdown files. Headings become
			outline sections, math code fences become equations, and images
			become figures. Each file produces a separate document.

			Example:
			  typeset import notes/thermo.md
			  typeset import chapter-*.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("at least one file argument is required")
			}

			ctx := cmd.Context()
			for _, path := range args {
				doc, err := importer.Import(ctx, s.Store, path)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				cmd.Printf("Imported %s as document %d: %s\n", path, doc.ID, doc.Title)

				if openFlag && len(args) == 1 {
					return outline.Run(s, doc)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&openFlag, "open", "o", false, "Open the outline view after importing a single file.")

	return cmd
}
