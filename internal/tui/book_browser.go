package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// BookItem wraps a catalog record for list display.
type BookItem struct {
	Book catalog.Book
}

// FilterValue returns the string used for `/` filtering in the list.
func (b BookItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s %s", b.Book.Number, b.Book.Title, b.Book.Author, b.Book.Genre)
}

// Column width constraints
const (
	numberWidth    = 4
	yearWidth      = 4
	statusWidth    = 9
	minTitleWidth  = 12
	maxTitleWidth  = 48
	minAuthorWidth = 8
	maxAuthorWidth = 24
	minGenreWidth  = 6
	maxGenreWidth  = 14
	columnGap      = 1
)

// computeColumnWidths distributes available width across the flexible columns.
func computeColumnWidths(totalWidth int) (titleW, authorW, genreW int) {
	prefix := 2
	gaps := columnGap * 5
	usable := totalWidth - prefix - gaps - numberWidth - yearWidth - statusWidth
	if usable < minTitleWidth+minAuthorWidth+minGenreWidth {
		return minTitleWidth, minAuthorWidth, minGenreWidth
	}
	titleW = usable * 50 / 100
	if titleW > maxTitleWidth {
		titleW = maxTitleWidth
	}
	remaining := usable - titleW
	authorW = remaining * 60 / 100
	if authorW > maxAuthorWidth {
		authorW = maxAuthorWidth
	}
	genreW = remaining - authorW
	if genreW > maxGenreWidth {
		genreW = maxGenreWidth
	}

	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}
	if authorW < minAuthorWidth {
		authorW = minAuthorWidth
	}
	if genreW < minGenreWidth {
		genreW = minGenreWidth
	}
	return
}

// padColumn fits s to exactly width cells, truncating with an ellipsis.
// Width-aware so multi-byte and wide characters align correctly.
func padColumn(s string, width int) string {
	if width <= 0 {
		return ""
	}
	truncated := xansi.Truncate(s, width, "…")
	if pad := width - xansi.StringWidth(truncated); pad > 0 {
		truncated += strings.Repeat(" ", pad)
	}
	return truncated
}

// renderBookRow renders one book with fixed-width columns.
func renderBookRow(w io.Writer, m list.Model, index int, item list.Item) {
	bookItem, ok := item.(BookItem)
	if !ok {
		return
	}
	b := bookItem.Book

	listWidth := m.Width()
	if listWidth <= 0 {
		listWidth = 80
	}
	titleW, authorW, genreW := computeColumnWidths(listWidth)
	gap := strings.Repeat(" ", columnGap)

	isCursor := index == m.Index()
	prefix := "  "
	if isCursor {
		prefix = lipgloss.NewStyle().Foreground(ColorYellow).Render("›") + " "
	}

	numberCol := fmt.Sprintf("%*d", numberWidth, b.Number)
	titleCol := padColumn(b.Title, titleW)
	authorCol := padColumn(b.Author, authorW)
	genreCol := padColumn(b.Genre, genreW)
	yearCol := fmt.Sprintf("%*d", yearWidth, b.Year())

	statusStr := "on shelf"
	if !b.Available {
		statusStr = "out"
	}
	statusCol := padColumn(statusStr, statusWidth)

	var numberStyled, titleStyled, authorStyled, genreStyled, yearStyled, statusStyled string
	if isCursor {
		numberStyled = StyleHighlight.Render(numberCol)
		titleStyled = StyleHighlight.Render(titleCol)
		authorStyled = lipgloss.NewStyle().Foreground(ColorYellow).Faint(true).Render(authorCol)
		genreStyled = StyleGenre.Render(genreCol)
		yearStyled = StyleHighlight.Render(yearCol)
		statusStyled = StyleHighlight.Render(statusCol)
	} else {
		numberStyled = StyleHelp.Render(numberCol)
		titleStyled = StyleNormal.Render(titleCol)
		authorStyled = StyleHelp.Render(authorCol)
		genreStyled = StyleGenre.Render(genreCol)
		yearStyled = StyleHelp.Render(yearCol)
		if b.Available {
			statusStyled = StyleAvailable.Render(statusCol)
		} else {
			statusStyled = StyleCheckedOut.Render(statusCol)
		}
	}

	line := prefix + numberStyled + gap + titleStyled + gap + authorStyled + gap +
		genreStyled + gap + yearStyled + gap + statusStyled
	_, _ = fmt.Fprint(w, line)
}

type browserModel struct {
	list     list.Model
	pick     bool // selection mode: enter resolves to a book number
	selected *BookItem
	quitting bool
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keys := NewStandardKeys()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Select):
			if m.pick {
				if item, ok := m.list.SelectedItem().(BookItem); ok {
					m.selected = &item
					m.quitting = true
					return m, tea.Quit
				}
			}
		}

	case tea.WindowSizeMsg:
		h, v := StyleBorder.GetFrameSize()
		m.list.SetSize(msg.Width-h-4, msg.Height-v-4)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	if m.quitting {
		return ""
	}
	content := m.list.View()
	if len(m.list.Items()) == 0 && m.list.FilterState() == list.Unfiltered {
		content = lipgloss.JoinVertical(lipgloss.Left,
			StyleHeader.Render(m.list.Title),
			"",
			StyleHelp.Render("The library is currently empty."),
			"",
			StyleHelp.Render("q back"),
		)
	}
	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(1, 2).Render(
		StyleBorder.Render(innerPadding.Render(content)))
}

func newBrowser(title string, books []catalog.Book, pick bool) browserModel {
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = BookItem{Book: b}
	}

	l := list.New(items, delegate.New(renderBookRow), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp

	if pick {
		l.AdditionalShortHelpKeys = func() []key.Binding {
			return []key.Binding{NewStandardKeys().Select}
		}
	}

	return browserModel{list: l, pick: pick}
}

func runBrowser(m browserModel) (browserModel, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("running browser: %w", err)
	}
	fm, ok := finalModel.(browserModel)
	if !ok {
		return m, fmt.Errorf("unexpected model type")
	}
	return fm, nil
}

// RunBookBrowser shows a read-only, filterable listing of the given records.
func RunBookBrowser(title string, books []catalog.Book) error {
	_, err := runBrowser(newBrowser(title, books, false))
	return err
}

// RunBookPicker shows the listing in selection mode and returns the chosen
// book number. Returns ErrCanceled if the operator backs out.
func RunBookPicker(title string, books []catalog.Book) (int, error) {
	fm, err := runBrowser(newBrowser(title, books, true))
	if err != nil {
		return 0, err
	}
	if fm.selected == nil {
		return 0, ErrCanceled
	}
	return fm.selected.Book.Number, nil
}
