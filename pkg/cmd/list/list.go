package list

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dasen603/typeset/internal/state"
)

var (
	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#778")).
		Width(6)

	titleCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#667"))
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all documents.",
		Long: heredoc.Doc(`
			This command lists every document in the library, most recently
			updated first.

			Example:
			  typeset list
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := s.Store.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				cmd.Println("No documents yet. Create one with: typeset new <title>")
				return nil
			}

			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				width = 80
			}

			titleWidth := width - 28
			if titleWidth < 20 {
				titleWidth = 20
			}

			for _, d := range docs {
				line := lipgloss.JoinHorizontal(
					lipgloss.Top,
					idStyle.Render(fmt.Sprintf("%d", d.ID)),
					titleCellStyle.Width(titleWidth).Render(d.Title),
					dateStyle.Render(d.ModifiedTime().Format("2006-01-02 15:04")),
				)
				cmd.Println(line)
			}

			return nil
		},
	}

	return cmd
}
