package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/tui"
)

// session holds the state of one interactive run: the catalog lives in memory
// and only touches disk on explicit Backup and Restore.
type session struct {
	cat  *catalog.Catalog
	path string
}

// runSession drives the hub menu loop. Each action completes fully, posts a
// one-line notice, and re-enters the menu; only Exit (or a canceled hub)
// leaves the loop. Catalog errors never terminate the session.
func runSession() error {
	s := &session{
		cat:  catalog.New(),
		path: backupPath(),
	}

	var notice string
	var noticeErr bool
	for {
		action, err := tui.RunHub(tui.HubContext{
			BookCount:  s.cat.Len(),
			BackupPath: s.path,
			Notice:     notice,
			NoticeErr:  noticeErr,
		})
		if err != nil {
			return err
		}
		if action == "quit" || action == "" {
			return nil
		}

		notice, noticeErr = s.dispatch(action)
	}
}

// dispatch runs one hub action and reports the outcome for the next hub
// render. Canceled pickers and forms produce no notice.
func (s *session) dispatch(action string) (notice string, isErr bool) {
	var err error
	switch action {
	case "display":
		err = s.display()
	case "search":
		notice, err = s.search()
	case "add":
		notice, err = s.add()
	case "remove":
		notice, err = s.pickAndRun("Remove a Book", s.cat.Remove, "Removed book #%d.")
	case "checkout":
		notice, err = s.pickAndRun("Check Out a Book", s.cat.CheckOut, "Checked out book #%d.")
	case "checkin":
		notice, err = s.pickAndRun("Check In a Book", s.cat.CheckIn, "Checked in book #%d.")
	case "damage":
		notice, err = s.pickAndRun("Report Damage", s.cat.ReportDamage, "Book #%d marked as damaged.")
	case "backup":
		notice, err = s.backup()
	case "restore":
		notice, err = s.restore()
	default:
		err = fmt.Errorf("unknown action: %s", action)
	}

	if errors.Is(err, tui.ErrCanceled) {
		return "", false
	}
	if err != nil {
		return err.Error(), true
	}
	return notice, false
}

func (s *session) display() error {
	title := fmt.Sprintf("My Library (%d books)", s.cat.Len())
	key := cfg.EffectiveSortKey()
	// The browser is a flat list, so genre grouping becomes genre ordering.
	if cfg.GroupByGenre() {
		key = catalog.SortByGenre
	}
	return tui.RunBookBrowser(title, s.cat.List(key))
}

func (s *session) search() (string, error) {
	query, err := tui.RunQueryPrompt("Search", "matches title, author, or genre", "query")
	if err != nil {
		return "", err
	}
	matches := s.cat.Search(query)
	title := fmt.Sprintf("Search %q (%d matches)", query, len(matches))
	if err := tui.RunBookBrowser(title, matches); err != nil {
		return "", err
	}
	return "", nil
}

func (s *session) add() (string, error) {
	form := tui.AddFormData{}
	errMsg := ""
	for {
		data, err := tui.RunAddForm(form, errMsg)
		if err != nil {
			return "", err
		}

		n, err := s.cat.Add(data.Title, data.Author, data.Genre, data.PubDate, data.Description)
		if err == nil {
			return fmt.Sprintf("Added book #%d: %s.", n, data.Title), nil
		}

		var fieldErr *catalog.InvalidFieldError
		if errors.As(err, &fieldErr) {
			// Reopen the form with the rejected values so the operator can
			// correct the one bad field.
			form, errMsg = *data, fieldErr.Error()
			continue
		}
		return "", err
	}
}

// pickAndRun shows the book picker and applies op to the chosen number.
func (s *session) pickAndRun(title string, op func(int) error, doneFormat string) (string, error) {
	n, err := tui.RunBookPicker(title, s.cat.List(catalog.SortByNumber))
	if err != nil {
		return "", err
	}
	if err := op(n); err != nil {
		return "", err
	}
	return fmt.Sprintf(doneFormat, n), nil
}

func (s *session) backup() (string, error) {
	if err := saveCatalog(s.path, s.cat); err != nil {
		return "", err
	}
	return fmt.Sprintf("Backed up %d books to %s.", s.cat.Len(), s.path), nil
}

func (s *session) restore() (string, error) {
	books, err := catalog.Load(s.path)
	if err != nil {
		return "", err
	}
	if err := s.cat.ReplaceAll(books); err != nil {
		return "", err
	}
	return fmt.Sprintf("Restored %d books from %s.", s.cat.Len(), s.path), nil
}
