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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/treetax/internal/iobuild"
	"github.com/gnames/treetax/pkg/config"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	var (
		name       string
		treePath   string
		fastaDir   string
		fastaExt   string
		withSQLite bool
		noProgress bool
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Create Centrifuge taxonomy files from a tree and FASTA files",
		Long: `Create taxonomy files for centrifuge-build from a Newick tree.

Every leaf of the tree must have a FASTA file in the FASTA directory
named after the leaf label, for example leaf 'Homo_sapiens' needs
'Homo_sapiens.fasta' (or 'Homo_sapiens.fasta.gz').

This command:
  1. Reads the Newick tree
  2. Merges all FASTA files into <name>.fasta, prefixing sequence ids
     with the taxon name
  3. Numbers tree nodes in pre-order, the root of the taxonomy is 1
  4. Writes <name>_nodes.dmp, <name>_names.dmp and
     <name>_seqid2taxid.map
  5. Optionally saves the same records to <name>.sqlite
  6. Prints the centrifuge-build command for the created files

Nothing is written if any leaf has no FASTA file.

Examples:
  treetax build -n mydb -w tree.nwk -f fasta/
  treetax build -n mydb -w tree.nwk -f fasta/ --ext .fa --sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(
				cmd, name, treePath, fastaDir,
				fastaExt, withSQLite, noProgress,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringVarP(
		&name, "name", "n", "",
		"name of the database, used as prefix of output files",
	)
	buildCmd.Flags().StringVarP(
		&treePath, "newick", "w", "",
		"path to the Newick tree",
	)
	buildCmd.Flags().StringVarP(
		&fastaDir, "fasta", "f", "",
		"directory with one FASTA file per taxon",
	)
	buildCmd.Flags().StringVar(
		&fastaExt, "ext", ".fasta",
		"extension of taxon FASTA files",
	)
	buildCmd.Flags().BoolVar(
		&withSQLite, "sqlite", false,
		"also save the taxonomy to <name>.sqlite",
	)
	buildCmd.Flags().BoolVar(
		&noProgress, "no-progress", false,
		"do not show progress bar",
	)
	buildCmd.MarkFlagRequired("name")
	buildCmd.MarkFlagRequired("newick")
	buildCmd.MarkFlagRequired("fasta")

	return buildCmd
}

func runBuild(
	cmd *cobra.Command,
	name string,
	treePath string,
	fastaDir string,
	fastaExt string,
	withSQLite bool,
	noProgress bool,
) error {
	buildOpts := []config.Option{
		config.OptBuildName(name),
		config.OptBuildTreePath(treePath),
		config.OptBuildFastaDir(fastaDir),
		config.OptBuildWithProgress(!noProgress),
	}
	if cmd.Flags().Changed("ext") {
		buildOpts = append(buildOpts, config.OptBuildFastaExt(fastaExt))
	}
	if cmd.Flags().Changed("sqlite") {
		buildOpts = append(buildOpts, config.OptBuildWithSQLite(withSQLite))
	}
	cfg.Update(buildOpts)

	res, err := iobuild.New(cfg, logger).Build()
	if err != nil {
		return err
	}

	if res.SQLitePath != "" {
		gn.Info("SQLite database: <em>%s</em>", res.SQLitePath)
	}
	gn.Info("Next step: create the Centrifuge index with")
	fmt.Fprintln(cmd.OutOrStdout(), res.CentrifugeCommand())
	return nil
}
