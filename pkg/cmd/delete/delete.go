package delete

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	cmdpkg "github.com/Dasen603/typeset/pkg/cmd"

	"github.com/Dasen603/typeset/internal/state"
)

var forceFlag bool

func NewCmdDelete(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id or query]",
		Short: "Delete a document.",
		Long: heredoc.Doc(`
			This command deletes a document along with its outline and all
			node content. Deletion asks for confirmation unless --force is
			given.

			Example:
			  typeset delete 3
			  typeset delete "old draft" --force
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := cmdpkg.ResolveDocument(ctx, s, args, "Delete document")
			if err != nil {
				return err
			}

			if !forceFlag {
				sel := selection.New(
					fmt.Sprintf("Delete %q and all of its content?", doc.Title),
					[]string{"no", "yes"},
				)
				sel.Filter = nil

				choice, err := sel.RunPrompt()
				if err != nil {
					return err
				}
				if choice != "yes" {
					cmd.Println("Aborted.")
					return nil
				}
			}

			if err := s.Store.DeleteDocument(ctx, doc.ID); err != nil {
				return err
			}

			cmd.Printf("Deleted document %d: %s\n", doc.ID, doc.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Skip the confirmation prompt.")

	return cmd
}
