package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/libman/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the config file",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			header("Settings (flags > env > %s)", configFilePath())
			fmt.Printf("  backup.path:      %s\n", cfg.EffectiveBackupPath())
			fmt.Printf("  display.sort:     %s\n", cfg.EffectiveSortKey())
			fmt.Printf("  display.group_by: %s\n", cfg.Display.GroupBy)
			fmt.Printf("  display.no_color: %v\n", cfg.Display.NoColor)
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Long: `Write the effective settings (defaults plus any LIBMAN_* overrides) to the
config file, so they survive the environment they were set in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

// configFilePath resolves the config file the same way Load does: flag, then
// environment, then the per-user default.
func configFilePath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if p := os.Getenv("LIBMAN_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}
