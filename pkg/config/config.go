// Package config provides configuration management for treetax.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination, file
//   - Build: fasta_ext, with_sqlite
//
// Runtime-only fields (CLI flags only):
//   - Build.Name, Build.TreePath, Build.FastaDir, Build.WithProgress
//   - Convert.Name, Convert.NamesPath, Convert.NodesPath
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TREETAX_ prefix with underscores for nesting:
//
//	TREETAX_LOG_LEVEL=debug
//	TREETAX_LOG_DESTINATION=file
//	TREETAX_BUILD_FASTA_EXT=.fa
package config

// Config represents the complete treetax configuration.
type Config struct {
	// Log contains settings of the application log.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Build contains settings of the build (tree to taxonomy) command.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Convert contains settings of the convert (taxonomy to tree) command.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'text' or 'json'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be 'stderr', 'stdout' or 'file'.
	Destination string `mapstructure:"destination" yaml:"destination"`
	// File is the log file used when Destination is 'file'.
	// Empty value means the default location under HomeDir.
	File string `mapstructure:"file"        yaml:"file"`
}

// BuildConfig contains settings for building a flat taxonomy from
// a tree and a directory of FASTA files.
type BuildConfig struct {
	// Name of the output database. It is used as a prefix for all
	// created files.
	Name string `mapstructure:"name" yaml:"name"`

	// TreePath is the path to a Newick file. Leaf labels are names of
	// FASTA files without extension.
	TreePath string `mapstructure:"tree_path" yaml:"tree_path"`

	// FastaDir is a directory with one FASTA file per taxon.
	FastaDir string `mapstructure:"fasta_dir" yaml:"fasta_dir"`

	// FastaExt is the extension of taxon FASTA files. Gzipped files with
	// the same extension followed by '.gz' are also used.
	FastaExt string `mapstructure:"fasta_ext" yaml:"fasta_ext"`

	// WithSQLite is true if the produced taxonomy should also be saved
	// into an SQLite database.
	WithSQLite bool `mapstructure:"with_sqlite" yaml:"with_sqlite"`

	// WithProgress is true if a progress bar is shown while FASTA files
	// are read.
	WithProgress bool `mapstructure:"with_progress" yaml:"with_progress"`
}

// ConvertConfig contains settings for converting a flat taxonomy into
// a Newick tree.
type ConvertConfig struct {
	// Name of the output tree file without '.nwk' extension.
	Name string `mapstructure:"name" yaml:"name"`

	// NamesPath is the path to names.dmp.
	NamesPath string `mapstructure:"names_path" yaml:"names_path"`

	// NodesPath is the path to nodes.dmp.
	NodesPath string `mapstructure:"nodes_path" yaml:"nodes_path"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		Build: BuildConfig{
			FastaExt: ".fasta",
		},
		Convert: ConvertConfig{
			Name: "taxonomy",
		},
	}

	return res
}

// FastaPath returns the path of the merged FASTA file.
func (b BuildConfig) FastaPath() string {
	return b.Name + ".fasta"
}

// NodesPath returns the path of the produced nodes.dmp file.
func (b BuildConfig) NodesPath() string {
	return b.Name + "_nodes.dmp"
}

// NamesPath returns the path of the produced names.dmp file.
func (b BuildConfig) NamesPath() string {
	return b.Name + "_names.dmp"
}

// SeqIDPath returns the path of the produced seqid2taxid.map file.
func (b BuildConfig) SeqIDPath() string {
	return b.Name + "_seqid2taxid.map"
}

// SQLitePath returns the path of the optional SQLite database.
func (b BuildConfig) SQLitePath() string {
	return b.Name + ".sqlite"
}

// TreeOutPath returns the path of the Newick file written by convert.
func (c ConvertConfig) TreeOutPath() string {
	return c.Name + ".nwk"
}
