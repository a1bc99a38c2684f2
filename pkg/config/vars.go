package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "treetax"

	// LineWidth is the number of residues per line in the merged FASTA
	// output.
	LineWidth = 60
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/treetax by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/treetax/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// LogFilePath returns the default log file.
func LogFilePath(homeDir string) string {
	return filepath.Join(LogDir(homeDir), AppName+".log")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/treetax/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
