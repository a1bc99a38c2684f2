/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/internal/iofs"
	"github.com/gnames/treetax/internal/iologger"
	treetax "github.com/gnames/treetax/pkg"
	"github.com/gnames/treetax/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config

	logger    *slog.Logger
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			treetax.Version, treetax.Build),
		Use:   "treetax",
		Short: "Converts phylogenetic trees to Centrifuge taxonomies and back",
		Long: `treetax turns a Newick tree and a directory of per-taxon FASTA
files into NCBI-style taxonomy dumps (nodes.dmp, names.dmp,
seqid2taxid.map) and a merged FASTA file ready for centrifuge-build.
It can also rebuild a Newick tree from names.dmp and nodes.dmp.

Commands:
  - build: tree and FASTA files to a flat taxonomy
  - convert: flat taxonomy to a Newick tree

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (TREETAX_*)
  3. Config file (~/.config/treetax/config.yaml)
  4. Built-in defaults

Environment Variables:
    TREETAX_LOG_LEVEL          Log level (debug/info/warn/error)
    TREETAX_LOG_FORMAT         Log format (text/json)
    TREETAX_LOG_DESTINATION    Log destination (stderr/stdout/file)
    TREETAX_LOG_FILE           Log file for the file destination
    TREETAX_BUILD_FASTA_EXT    Extension of taxon FASTA files
    TREETAX_BUILD_WITH_SQLITE  Also save taxonomy to SQLite`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "treetax version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for treetax")

	rootCmd.PersistentFlags().String("log-level", "",
		"log level: debug, info, warning, error")
	rootCmd.PersistentFlags().String("log-file", "",
		"write logs to this file instead of stderr")

	rootCmd.AddCommand(getBuildCmd())
	rootCmd.AddCommand(getConvertCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update(logFlags(cmd))

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	closeLog()
	logger, logCloser, err = iologger.New(cfg.Log, homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	logger.Debug("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		// errors of commands are already shown, cobra errors are not
		var gnErr *gn.Error
		if !errors.As(err, &gnErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("TREETAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Log configuration
	v.BindEnv("log.level", "TREETAX_LOG_LEVEL")
	v.BindEnv("log.format", "TREETAX_LOG_FORMAT")
	v.BindEnv("log.destination", "TREETAX_LOG_DESTINATION")
	v.BindEnv("log.file", "TREETAX_LOG_FILE")

	// Build configuration
	v.BindEnv("build.fasta_ext", "TREETAX_BUILD_FASTA_EXT")
	v.BindEnv("build.with_sqlite", "TREETAX_BUILD_WITH_SQLITE")

	v.AutomaticEnv()
}
