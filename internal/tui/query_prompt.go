package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type queryPromptModel struct {
	input    textinput.Model
	title    string
	hint     string
	done     bool
	canceled bool
}

func (m queryPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m queryPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m queryPromptModel) View() string {
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	sep := sepStyle.Render(strings.Repeat("─", 50))

	var b strings.Builder
	b.WriteString(StyleHeader.Render(m.title))
	b.WriteString("\n")
	if m.hint != "" {
		b.WriteString(StyleHelp.Render(m.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Key: "enter", Label: "enter search"},
		{Key: "", Label: "esc cancel"},
	}, ""))
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(2, 4).Render(
		StyleBorder.Render(innerPadding.Render(b.String())))
}

// RunQueryPrompt collects a single line of text, for search queries. An empty
// submission is allowed, since an empty query matches every record. Returns
// ErrCanceled if the operator backs out.
func RunQueryPrompt(title, hint, placeholder string) (string, error) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()
	input.CharLimit = 100
	input.Width = 44
	input.Prompt = "│ "

	m := queryPromptModel{input: input, title: title, hint: hint}
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	fm, ok := finalModel.(queryPromptModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if fm.canceled {
		return "", ErrCanceled
	}
	return fm.input.Value(), nil
}
