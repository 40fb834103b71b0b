package config

import "github.com/blackwell-systems/libman/internal/catalog"

// Config is the top-level libman configuration.
type Config struct {
	Backup  BackupConfig  `mapstructure:"backup" yaml:"backup"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// BackupConfig holds snapshot file settings. The catalog core itself never
// reads the environment; the path is resolved here and passed in.
type BackupConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	Sort    string `mapstructure:"sort" yaml:"sort"`
	GroupBy string `mapstructure:"group_by" yaml:"group_by"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// EffectiveBackupPath returns the configured backup path or the built-in default.
func (c *Config) EffectiveBackupPath() string {
	if c.Backup.Path != "" {
		return c.Backup.Path
	}
	return "library_backup.txt"
}

// EffectiveSortKey returns the configured default sort key, falling back to
// book-number order when unset or unrecognized.
func (c *Config) EffectiveSortKey() catalog.SortKey {
	if c.Display.Sort == "" {
		return catalog.SortByNumber
	}
	key, err := catalog.ParseSortKey(c.Display.Sort)
	if err != nil {
		return catalog.SortByNumber
	}
	return key
}

// GroupByGenre reports whether the display view defaults to genre grouping.
func (c *Config) GroupByGenre() bool {
	return c.Display.GroupBy == "genre"
}
