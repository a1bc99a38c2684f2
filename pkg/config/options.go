package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error". Upper case values and
// "warning" are accepted as well.
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	if s == "warning" {
		s = "warn"
	}
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "stderr", "stdout", "file".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptLogFile sets a log file and switches log destination to "file".
func OptLogFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Log File", s) {
			c.Log.File = s
			c.Log.Destination = "file"
		}
	}
}

// OptBuildName sets the name of the output database.
// Runtime-only field - not in ToOptions().
func OptBuildName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Name", s) {
			c.Build.Name = s
		}
	}
}

// OptBuildTreePath sets the path to the input Newick file.
// Runtime-only field - not in ToOptions().
func OptBuildTreePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Tree Path", s) {
			c.Build.TreePath = s
		}
	}
}

// OptBuildFastaDir sets the directory with taxon FASTA files.
// Runtime-only field - not in ToOptions().
func OptBuildFastaDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("FASTA Directory", s) {
			c.Build.FastaDir = s
		}
	}
}

// OptBuildFastaExt sets the extension of taxon FASTA files.
// A missing leading dot is added.
func OptBuildFastaExt(s string) Option {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return func(c *Config) {
		if isValidString("FASTA Extension", s) {
			c.Build.FastaExt = s
		}
	}
}

// OptBuildWithSQLite sets whether the taxonomy is also exported
// to an SQLite database.
func OptBuildWithSQLite(b bool) Option {
	return func(c *Config) {
		c.Build.WithSQLite = b
	}
}

// OptBuildWithProgress sets whether a progress bar is shown.
// Runtime-only field - not in ToOptions().
func OptBuildWithProgress(b bool) Option {
	return func(c *Config) {
		c.Build.WithProgress = b
	}
}

// OptConvertName sets the name of the output Newick file.
// Runtime-only field - not in ToOptions().
func OptConvertName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Convert Name", s) {
			c.Convert.Name = s
		}
	}
}

// OptConvertNamesPath sets the path to names.dmp.
// Runtime-only field - not in ToOptions().
func OptConvertNamesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Names Path", s) {
			c.Convert.NamesPath = s
		}
	}
}

// OptConvertNodesPath sets the path to nodes.dmp.
// Runtime-only field - not in ToOptions().
func OptConvertNodesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Nodes Path", s) {
			c.Convert.NodesPath = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
