package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/libman/internal/config"
	"github.com/blackwell-systems/libman/internal/tui"
	"github.com/blackwell-systems/libman/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	flagNoColor       bool
	flagNoInteractive bool
	flagFile          string
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "libman",
	Short: "Manage a personal book catalog from the terminal",
	Long: `libman keeps a small catalog of books: add, remove, check out, check in,
search, and snapshot it to a flat text file.

Run 'libman' with no arguments to launch the interactive menu. Every
subcommand also works non-interactively against the backup file, so the
catalog can be scripted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runSession()
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Backup file path (default: library_backup.txt)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/libman/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Display.NoColor {
			color.NoColor = true
		}
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newCheckOutCmd(),
		newCheckInCmd(),
		newDamageCmd(),
		newSearchCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

// backupPath resolves the snapshot file for this invocation: flag, then
// config, then the working-directory default.
func backupPath() string {
	if flagFile != "" {
		return util.ExpandHome(flagFile)
	}
	return cfg.EffectiveBackupPath()
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
