package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/internal/store"
	"github.com/Dasen603/typeset/internal/tui/outline"
)

var openFlag bool

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new document.",
		Long: heredoc.Doc(`
			This command creates a new document with the given title and an
			empty first section.

			Example:
			  typeset new "Quantum Field Theory Notes"
			  typeset new "Lab Report" --open
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("title argument is required")
			}

			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("title cannot be empty")
			}

			ctx := cmd.Context()
			doc, err := s.Store.CreateDocument(ctx, title)
			if err != nil {
				return err
			}

			_, err = s.Store.CreateNode(ctx, store.NewNode{
				DocumentID: doc.ID,
				NodeType:   store.NodeTypeSection,
				Title:      "Introduction",
			})
			if err != nil {
				return err
			}

			cmd.Printf("Created document %d: %s\n", doc.ID, doc.Title)

			if openFlag {
				return outline.Run(s, doc)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&openFlag, "open", "o", false, "Open the outline view after creating.")

	return cmd
}
