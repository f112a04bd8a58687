package exportDoc

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	cmdpkg "github.com/Dasen603/typeset/pkg/cmd"

	"github.com/Dasen603/typeset/internal/export"
	"github.com/Dasen603/typeset/internal/state"
)

var commitFlag bool

func NewCmdExport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id or query]",
		Short: "Export a document to markdown.",
		Long: heredoc.Doc(`
			This command flattens a document's outline into a single markdown
			file under the configured export directory. Passing --commit
			records the export directory in a local git repository, creating
			it on first use.

			Example:
			  typeset export 3
			  typeset export thesis --commit
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := cmdpkg.ResolveDocument(ctx, s, args, "Export document")
			if err != nil {
				return err
			}

			path, err := export.Export(ctx, s.Store, doc.ID, s.Config.ExportDir)
			if err != nil {
				return err
			}

			cmd.Printf("Exported %s to %s\n", doc.Title, path)

			if commitFlag {
				if err := export.Commit(s.Config.ExportDir, "Export "+doc.Title); err != nil {
					return err
				}
				cmd.Println("Committed export directory.")
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&commitFlag, "commit", "c", false, "Commit the export directory after writing.")

	return cmd
}
