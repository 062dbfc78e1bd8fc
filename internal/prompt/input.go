package prompt

import (
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true)

// inputModel is a single-line path editor
type inputModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel() inputModel {
	ti := textinput.New()
	ti.Prompt = Text
	ti.PromptStyle = promptStyle
	ti.Placeholder = "/path/to/folder"
	ti.Focus()

	return inputModel{input: ti}
}

// Init implements tea.Model
func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m inputModel) View() string {
	if m.done || m.cancelled {
		// Leave the answer on screen once the program exits
		return promptStyle.Render(Text) + m.input.Value() + "\n"
	}
	return m.input.View() + "\n"
}

func readInteractive(in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newInputModel(), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(inputModel)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	return Clean(m.input.Value()), nil
}
