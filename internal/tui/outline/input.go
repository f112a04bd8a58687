package outline

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputModel struct {
	prompt string
	input  textinput.Model
}

func newInputModel() inputModel {
	t := textinput.New()
	t.Prompt = "> "
	t.PromptStyle = selectedRowStyle
	t.CharLimit = 120

	return inputModel{input: t}
}

func (m *inputModel) setPrompt(prompt string) {
	m.prompt = prompt
}

func (m *inputModel) setValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

func (m *inputModel) focus() tea.Cmd {
	m.input.Focus()
	return textinput.Blink
}

func (m *inputModel) reset() {
	m.input.SetValue("")
	m.input.Blur()
}

func (m inputModel) value() string {
	return m.input.Value()
}

func (m inputModel) update(msg tea.Msg) (inputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) view() string {
	return titleStyle.Render(m.prompt) + "\n" + m.input.View()
}
