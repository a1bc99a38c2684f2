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
	"github.com/gnames/treetax/internal/ioconvert"
	"github.com/gnames/treetax/pkg/config"
	"github.com/spf13/cobra"
)

// getConvertCmd returns the convert command.
func getConvertCmd() *cobra.Command {
	var (
		name      string
		namesPath string
		nodesPath string
	)

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert names.dmp and nodes.dmp to a Newick tree",
		Long: `Rebuild a Newick tree from NCBI-style taxonomy dumps.

The node of tax id 1 becomes the root of the tree. Node records are
attached in file order under their parent, and a parent is found by
its name. A record with a name that is already in the tree is skipped
with a warning. If a name matches several nodes, the last one found is
used. Every branch gets length 1.

The tree is saved to <name>.nwk.

Examples:
  treetax convert -a names.dmp -d nodes.dmp
  treetax convert -a names.dmp -d nodes.dmp -n mytree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConvert(cmd, name, namesPath, nodesPath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	convertCmd.Flags().StringVarP(
		&name, "name", "n", "taxonomy",
		"name of the output tree file without extension",
	)
	convertCmd.Flags().StringVarP(
		&namesPath, "names", "a", "",
		"path to names.dmp",
	)
	convertCmd.Flags().StringVarP(
		&nodesPath, "nodes", "d", "",
		"path to nodes.dmp",
	)
	convertCmd.MarkFlagRequired("names")
	convertCmd.MarkFlagRequired("nodes")

	return convertCmd
}

func runConvert(
	cmd *cobra.Command,
	name string,
	namesPath string,
	nodesPath string,
) error {
	convertOpts := []config.Option{
		config.OptConvertNamesPath(namesPath),
		config.OptConvertNodesPath(nodesPath),
	}
	if cmd.Flags().Changed("name") {
		convertOpts = append(convertOpts, config.OptConvertName(name))
	}
	cfg.Update(convertOpts)

	res, err := ioconvert.New(cfg, logger).Convert()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.TreePath)
	return nil
}
