package app

import (
	"errors"

	"github.com/blackwell-systems/libman/internal/catalog"
	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/spf13/cobra"
)

func newCheckOutCmd() *cobra.Command {
	return newCirculationCmd(circulationSpec{
		use:    "checkout [number]",
		short:  "Check out a book",
		picker: "Check Out a Book",
		op:     (*catalog.Catalog).CheckOut,
		done:   "Checked out book #%d",
	})
}

func newCheckInCmd() *cobra.Command {
	return newCirculationCmd(circulationSpec{
		use:    "checkin [number]",
		short:  "Check in a book",
		picker: "Check In a Book",
		op:     (*catalog.Catalog).CheckIn,
		done:   "Checked in book #%d",
	})
}

func newDamageCmd() *cobra.Command {
	return newCirculationCmd(circulationSpec{
		use:    "damage [number]",
		short:  "Report a book as damaged (marks it unavailable)",
		picker: "Report Damage",
		op:     (*catalog.Catalog).ReportDamage,
		done:   "Book #%d marked as damaged",
	})
}

// circulationSpec describes one availability-flipping command; checkout,
// checkin, and damage differ only in the catalog operation they invoke.
type circulationSpec struct {
	use    string
	short  string
	picker string
	op     func(*catalog.Catalog, int) error
	done   string
}

func newCirculationCmd(spec circulationSpec) *cobra.Command {
	return &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(backupPath())
			if err != nil {
				return err
			}

			n, err := resolveBookNumber(cmd, args, c, spec.picker)
			if err != nil {
				if errors.Is(err, tui.ErrCanceled) {
					warn("Canceled.")
					return nil
				}
				return err
			}

			if err := spec.op(c, n); err != nil {
				return err
			}
			if err := saveCatalog(backupPath(), c); err != nil {
				return err
			}
			ok(spec.done, n)
			return nil
		},
	}
}
