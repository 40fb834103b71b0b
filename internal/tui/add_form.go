package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the operator backs out of a form or picker.
var ErrCanceled = errors.New("canceled")

// AddFormData holds the book fields collected from the operator. Validation
// belongs to the catalog; the form only gathers text.
type AddFormData struct {
	Title       string
	Author      string
	Genre       string
	PubDate     string
	Description string
}

type addFormModel struct {
	inputs     []textinput.Model
	focused    int
	result     *AddFormData
	errMsg     string
	canceled   bool
	confirming bool
	activeCmd  string
	width      int
	height     int
}

const (
	addFieldTitle = iota
	addFieldAuthor
	addFieldGenre
	addFieldDate
	addFieldDescription
)

func newAddForm(defaults AddFormData, errMsg string) addFormModel {
	m := addFormModel{
		inputs: make([]textinput.Model, 5),
		errMsg: errMsg,
	}

	const fieldWidth = 42

	m.inputs[addFieldTitle] = textinput.New()
	m.inputs[addFieldTitle].Placeholder = "Book title"
	m.inputs[addFieldTitle].SetValue(defaults.Title)
	m.inputs[addFieldTitle].Focus()
	m.inputs[addFieldTitle].CharLimit = 200
	m.inputs[addFieldTitle].Width = fieldWidth
	m.inputs[addFieldTitle].Prompt = "│ "

	m.inputs[addFieldAuthor] = textinput.New()
	m.inputs[addFieldAuthor].Placeholder = "Author name"
	m.inputs[addFieldAuthor].SetValue(defaults.Author)
	m.inputs[addFieldAuthor].CharLimit = 100
	m.inputs[addFieldAuthor].Width = fieldWidth
	m.inputs[addFieldAuthor].Prompt = "│ "

	m.inputs[addFieldGenre] = textinput.New()
	m.inputs[addFieldGenre].Placeholder = "Genre"
	m.inputs[addFieldGenre].SetValue(defaults.Genre)
	m.inputs[addFieldGenre].CharLimit = 60
	m.inputs[addFieldGenre].Width = fieldWidth
	m.inputs[addFieldGenre].Prompt = "│ "

	m.inputs[addFieldDate] = textinput.New()
	m.inputs[addFieldDate].Placeholder = "1965-08-01"
	m.inputs[addFieldDate].SetValue(defaults.PubDate)
	m.inputs[addFieldDate].CharLimit = 10
	m.inputs[addFieldDate].Width = 12
	m.inputs[addFieldDate].Prompt = "│ "

	m.inputs[addFieldDescription] = textinput.New()
	m.inputs[addFieldDescription].Placeholder = "Short description"
	m.inputs[addFieldDescription].SetValue(defaults.Description)
	m.inputs[addFieldDescription].CharLimit = 400
	m.inputs[addFieldDescription].Width = fieldWidth
	m.inputs[addFieldDescription].Prompt = "│ "

	return m
}

func (m addFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m addFormModel) submit() (tea.Model, tea.Cmd) {
	m.result = &AddFormData{
		Title:       m.inputs[addFieldTitle].Value(),
		Author:      m.inputs[addFieldAuthor].Value(),
		Genre:       m.inputs[addFieldGenre].Value(),
		PubDate:     m.inputs[addFieldDate].Value(),
		Description: m.inputs[addFieldDescription].Value(),
	}
	return m, tea.Quit
}

func (m addFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit

		case "enter":
			if m.confirming {
				return m.submit()
			}
			m.confirming = true
			return m, nil

		case "y", "Y":
			if m.confirming {
				return m.submit()
			}

		case "n", "N":
			if m.confirming {
				m.confirming = false
				return m, nil
			}

		case "tab", "shift+tab", "up", "down":
			if m.confirming {
				return m, nil
			}

			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focused--
			} else {
				m.focused++
			}

			if m.focused < 0 {
				m.focused = len(m.inputs) - 1
			} else if m.focused >= len(m.inputs) {
				m.focused = 0
			}

			cmds := make([]tea.Cmd, len(m.inputs)+1)
			for i := 0; i < len(m.inputs); i++ {
				if i == m.focused {
					cmds[i] = m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			m.activeCmd = "tab"
			cmds[len(m.inputs)] = HighlightCmd()
			return m, tea.Batch(cmds...)
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *addFormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m addFormModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(13).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Width(13).
		Align(lipgloss.Right).
		PaddingRight(1)

	const w = 58
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	b.WriteString(StyleHeader.Render("Add a Book"))
	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("all fields required · date is yyyy-mm-dd"))
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString(errStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	fields := []string{"Title", "Author", "Genre", "Date", "Description"}
	for i, label := range fields {
		if i == m.focused && !m.confirming {
			b.WriteString(formLabelActive.Render("› " + label))
		} else {
			b.WriteString(formLabel.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(StyleHighlight.Render("  Add this book? "))
		b.WriteString(StyleHelp.Render("Y/n"))
	} else {
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Key: "tab", Label: "Tab/↑↓ navigate"},
			{Key: "enter", Label: "enter submit"},
			{Key: "", Label: "esc cancel"},
		}, m.activeCmd))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// RunAddForm launches the interactive form for new book metadata. A non-empty
// errMsg is shown above the fields, so a rejected submission can be corrected
// without retyping everything. Returns ErrCanceled if the operator backs out.
func RunAddForm(defaults AddFormData, errMsg string) (*AddFormData, error) {
	m := newAddForm(defaults, errMsg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(addFormModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	if fm.canceled || fm.result == nil {
		return nil, ErrCanceled
	}

	return fm.result, nil
}
