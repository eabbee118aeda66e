package config

import (
	"fmt"
	"strings"
)

const CurrentVersion = 1

const (
	DefaultMaxColumnWidth   = 40
	DefaultSQLiteExportName = "export.sqlite3"
	DefaultCSVExportName    = "export.csv"
	DefaultLogLevel         = "info"
)

// Config holds user preferences. Viewer state is never stored here.
type Config struct {
	Version          int    `yaml:"version"`
	MaxColumnWidth   int    `yaml:"max_column_width,omitempty"`
	SQLiteExportName string `yaml:"sqlite_export_name,omitempty"`
	CSVExportName    string `yaml:"csv_export_name,omitempty"`
	LogFile          string `yaml:"log_file,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`
}

// Default returns a config with every field set to its default.
func Default() Config {
	return Config{
		Version:          CurrentVersion,
		MaxColumnWidth:   DefaultMaxColumnWidth,
		SQLiteExportName: DefaultSQLiteExportName,
		CSVExportName:    DefaultCSVExportName,
		LogLevel:         DefaultLogLevel,
	}
}

// WithDefaults fills unset fields from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.MaxColumnWidth <= 0 {
		c.MaxColumnWidth = d.MaxColumnWidth
	}
	if strings.TrimSpace(c.SQLiteExportName) == "" {
		c.SQLiteExportName = d.SQLiteExportName
	}
	if strings.TrimSpace(c.CSVExportName) == "" {
		c.CSVExportName = d.CSVExportName
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Validate rejects values the viewer cannot use.
func (c Config) Validate() error {
	if c.MaxColumnWidth < 0 {
		return fmt.Errorf("max_column_width must not be negative, got %d", c.MaxColumnWidth)
	}
	if c.MaxColumnWidth > 0 && c.MaxColumnWidth < 3 {
		return fmt.Errorf("max_column_width must be at least 3, got %d", c.MaxColumnWidth)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "error":
	default:
		return fmt.Errorf("log_level must be debug, info or error, got %q", c.LogLevel)
	}
	return nil
}
