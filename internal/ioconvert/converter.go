// Package ioconvert implements Converter interface. It rebuilds a
// Newick tree from names.dmp and nodes.dmp files.
package ioconvert

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/treetax/internal/iofs"
	treetax "github.com/gnames/treetax/pkg"
	"github.com/gnames/treetax/pkg/assemble"
	"github.com/gnames/treetax/pkg/config"
	"github.com/gnames/treetax/pkg/phylo"
	"github.com/gnames/treetax/pkg/taxdump"
)

type converter struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a new Converter.
func New(cfg *config.Config, log *slog.Logger) treetax.Converter {
	return &converter{cfg: cfg, log: log}
}

// Convert runs the inverse pipeline. The names table is read completely
// before the first node record.
func (c *converter) Convert() (*treetax.ConvertResult, error) {
	startTime := time.Now()
	cc := c.cfg.Convert
	c.log.Info("Starting conversion",
		"names", cc.NamesPath, "nodes", cc.NodesPath)

	names, err := readNames(cc.NamesPath)
	if err != nil {
		return nil, err
	}
	c.log.Info("Read names", "tax_ids", len(names))

	asm, err := assemble.New(names, c.log)
	if err != nil {
		return nil, RootNameError(cc.NamesPath, err)
	}
	if err = c.assemble(asm, cc.NodesPath); err != nil {
		return nil, err
	}

	tree := asm.Tree()
	stats := asm.Stats()
	res := &treetax.ConvertResult{
		TreePath:   cc.TreeOutPath(),
		Nodes:      tree.Len(),
		Duplicates: stats.Duplicates,
		Ambiguous:  stats.Ambiguous,
	}
	if err = writeTree(res.TreePath, tree); err != nil {
		return nil, err
	}

	c.summary(res, time.Since(startTime))
	return res, nil
}

func readNames(path string) (taxdump.NameTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := taxdump.ReadNames(f)
	if err != nil {
		return nil, DumpParseError(path, err)
	}
	return res, nil
}

func (c *converter) assemble(asm *assemble.Assembler, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return iofs.ReadFileError(path, err)
	}
	defer f.Close()

	sc := taxdump.NewNodeScanner(f)
	err = asm.AddAll(sc)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assemble.ErrNameNotFound):
		return NameNotFoundError(sc.Line(), err)
	case errors.Is(err, assemble.ErrParentNotFound):
		return ParentNotFoundError(sc.Line(), err)
	default:
		return DumpParseError(path, err)
	}
}

func writeTree(path string, tree *phylo.Node) error {
	f, err := iofs.CreatePending(path)
	if err != nil {
		return err
	}
	if err = phylo.Encode(f, tree); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

func (c *converter) summary(res *treetax.ConvertResult, dur time.Duration) {
	c.log.Info("Conversion complete",
		"nodes", res.Nodes,
		"duplicates", res.Duplicates,
		"ambiguous", res.Ambiguous,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	if res.Duplicates > 0 || res.Ambiguous > 0 {
		gn.Warn("Skipped %s duplicate records, %s ambiguous lookups",
			humanize.Comma(int64(res.Duplicates)),
			humanize.Comma(int64(res.Ambiguous)))
	}
	gn.Info(`Conversion complete
Nodes: %s. Tree: <em>%s</em>
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(res.Nodes)),
		res.TreePath,
		gnfmt.TimeString(dur.Seconds()),
	)
}
