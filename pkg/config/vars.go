package config

import (
	"path/filepath"

	"github.com/faersetl/faersetl/pkg/faers"
)

var (
	// AppName is used in generating file system paths.
	AppName = "faersetl"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/faersetl by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/faersetl by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// StageDir returns the directory used by the local "file" stage backend.
// Returns ~/.cache/faersetl/stage by default.
func StageDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "stage")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/faersetl/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/faersetl/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// StageRoot returns the effective root directory of the "file" stage
// backend.
func (c *Config) StageRoot() string {
	if c.Stage.Root != "" {
		return c.Stage.Root
	}
	return StageDir(c.HomeDir)
}

// SQLitePath returns the effective path of the SQLite warehouse file.
func (c *Config) SQLitePath() string {
	if c.Warehouse.SQLitePath != "" {
		return c.Warehouse.SQLitePath
	}
	return filepath.Join(CacheDir(c.HomeDir), "faersetl.sqlite")
}

// TableKey returns the object key of the staged CSV of a derived table.
func (s StageConfig) TableKey(id faers.TableID) string {
	switch id {
	case faers.ReportsID:
		return s.ReportsKey
	case faers.PatientsID:
		return s.PatientsKey
	case faers.SymptomsID:
		return s.SymptomsKey
	case faers.DrugsID:
		return s.DrugsKey
	}
	return ""
}

// TableName returns the warehouse table name of a derived table.
func (w WarehouseConfig) TableName(id faers.TableID) string {
	switch id {
	case faers.ReportsID:
		return w.ReportsTable
	case faers.PatientsID:
		return w.PatientsTable
	case faers.SymptomsID:
		return w.SymptomsTable
	case faers.DrugsID:
		return w.DrugsTable
	}
	return ""
}
