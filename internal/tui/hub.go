package tui

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/libman/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem represents an action in the hub menu
type MenuItem struct {
	Key         string
	Label       string
	Description string
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string {
	return m.Label + " " + m.Description
}

// HubContext holds session info to display in the hub header.
type HubContext struct {
	BookCount  int
	BackupPath string
	Notice     string // outcome of the previous action, shown once
	NoticeErr  bool   // render the notice as an error
}

// menuItems defines the operator menu in logical order
var menuItems = []MenuItem{
	// View
	{Key: "display", Label: "Display Books", Description: "List the catalog, grouped or sorted"},
	{Key: "search", Label: "Search", Description: "Find books by title, author, or genre"},
	// Mutate
	{Key: "add", Label: "Add a Book", Description: "Add a new book to the catalog"},
	{Key: "remove", Label: "Remove a Book", Description: "Delete a book by its number"},
	// Circulation
	{Key: "checkout", Label: "Check Out a Book", Description: "Mark a book as checked out"},
	{Key: "checkin", Label: "Check In a Book", Description: "Return a checked-out book to the shelf"},
	{Key: "damage", Label: "Report Damage", Description: "Mark a book as unavailable"},
	// Persistence
	{Key: "backup", Label: "Backup Library", Description: "Save the catalog to the backup file"},
	{Key: "restore", Label: "Restore Library", Description: "Replace the catalog from the backup file"},
	// Exit
	{Key: "quit", Label: "Exit", Description: "Leave the library"},
}

// renderMenuItem renders a menu item in the hub
func renderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	menuItem, ok := item.(MenuItem)
	if !ok {
		return
	}

	label := menuItem.Label
	desc := StyleHelp.Render(menuItem.Description)
	display := fmt.Sprintf("%-20s %s", label, desc)

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}

type hubModel struct {
	list     list.Model
	quitting bool
	action   string // which action was selected
	context  HubContext
	width    int
	height   int
}

type hubKeys struct {
	quit       key.Binding
	selectItem key.Binding
}

var hubKeyMap = hubKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	selectItem: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
}

func (m hubModel) Init() tea.Cmd {
	return nil
}

func (m hubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't handle keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, hubKeyMap.quit):
			m.quitting = true
			m.action = "quit"
			return m, tea.Quit

		case key.Matches(msg, hubKeyMap.selectItem):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.action = item.Key
				m.quitting = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const outerPaddingH = 4 * 2
		const outerPaddingV = 2 * 2
		const innerPaddingH = 1 + 2
		const headerLines = 4
		h, v := StyleBorder.GetFrameSize()

		listWidth := msg.Width - outerPaddingH - innerPaddingH - h
		listHeight := msg.Height - outerPaddingV - v - headerLines

		if listWidth < 40 {
			listWidth = 40
		}
		if listHeight < 5 {
			listHeight = 5
		}

		m.list.SetSize(listWidth, listHeight)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m hubModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1).
		Render("libman — Library Management")

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("  %d books · backup: %s", m.context.BookCount, m.context.BackupPath))

	parts := []string{header, status}

	if m.context.Notice != "" {
		noticeStyle := StyleHelp
		if m.context.NoticeErr {
			noticeStyle = StyleCheckedOut
		}
		parts = append(parts, noticeStyle.Render("  "+m.context.Notice))
	}

	parts = append(parts, m.list.View())
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(content)))
}

// hubItems builds the menu list. Every action is always offered; operations
// on an empty catalog report their empty state rather than disappearing.
func hubItems() []list.Item {
	items := make([]list.Item, len(menuItems))
	for i, item := range menuItems {
		items[i] = item
	}
	return items
}

// RunHub launches the interactive hub menu.
// Returns the selected action key, or error if canceled.
func RunHub(ctx HubContext) (string, error) {
	items := hubItems()

	d := delegate.NewWithSpacing(renderMenuItem, 1)
	l := list.New(items, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = StyleHelp

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{hubKeyMap.selectItem}
	}

	m := hubModel{
		list:    l,
		context: ctx,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running hub: %w", err)
	}

	fm, ok := finalModel.(hubModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	return fm.action, nil
}
