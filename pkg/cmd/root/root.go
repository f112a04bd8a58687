package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dasen603/typeset/internal/state"
	"github.com/Dasen603/typeset/pkg/cmd/delete"
	"github.com/Dasen603/typeset/pkg/cmd/exportDoc"
	"github.com/Dasen603/typeset/pkg/cmd/importDoc"
	"github.com/Dasen603/typeset/pkg/cmd/list"
	"github.com/Dasen603/typeset/pkg/cmd/new"
	"github.com/Dasen603/typeset/pkg/cmd/open"
	"github.com/Dasen603/typeset/pkg/cmd/serve"
)

var editorName string

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "typeset",
		Aliases: []string{"ts"},
		Short:   "Browse and edit structured documents from the terminal.",
		Long: `A structured document editor. Documents are outlines of sections,
equations, and figures stored in a local SQLite database, browsed in the
terminal and served to the web editor over HTTP.

  typeset new "Quantum Notes"
  typeset open quantum
  `,
		RunE: open.NewCmdOpen(s).RunE,
	}

	cmd.PersistentFlags().
		StringVarP(
			&editorName,
			"editor",
			"e",
			"",
			"External editor for node content.",
		)
	viper.BindPFlag("editor", cmd.PersistentFlags().Lookup("editor"))

	cmd.AddCommand(
		list.NewCmdList(s),
		new.NewCmdNew(s),
		open.NewCmdOpen(s),
		delete.NewCmdDelete(s),
		importDoc.NewCmdImport(s),
		exportDoc.NewCmdExport(s),
		serve.NewCmdServe(s),
	)

	return cmd, nil
}
