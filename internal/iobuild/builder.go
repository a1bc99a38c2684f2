// Package iobuild implements Builder interface. It turns a Newick tree
// and a directory of per-taxon FASTA files into a flat taxonomy for
// centrifuge-build.
//
// All output files are written under temporary names and appear only
// when the whole build succeeds.
package iobuild

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/treetax/internal/iofasta"
	"github.com/gnames/treetax/internal/iofs"
	"github.com/gnames/treetax/internal/iosqlite"
	treetax "github.com/gnames/treetax/pkg"
	"github.com/gnames/treetax/pkg/config"
	"github.com/gnames/treetax/pkg/linearize"
	"github.com/gnames/treetax/pkg/phylo"
	"github.com/gnames/treetax/pkg/seqs"
	"github.com/gnames/treetax/pkg/taxdump"
)

type builder struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a new Builder.
func New(cfg *config.Config, log *slog.Logger) treetax.Builder {
	return &builder{cfg: cfg, log: log}
}

// Build runs the forward pipeline.
func (b *builder) Build() (*treetax.BuildResult, error) {
	startTime := time.Now()
	bc := b.cfg.Build
	res := &treetax.BuildResult{
		Name:      bc.Name,
		FastaPath: bc.FastaPath(),
		NodesPath: bc.NodesPath(),
		NamesPath: bc.NamesPath(),
		SeqIDPath: bc.SeqIDPath(),
	}
	if bc.WithSQLite {
		res.SQLitePath = bc.SQLitePath()
	}
	b.log.Info("Starting build", "name", bc.Name,
		"tree", bc.TreePath, "fasta_dir", bc.FastaDir)

	tree, err := readTree(bc.TreePath)
	if err != nil {
		return nil, err
	}
	b.log.Info("Read tree", "nodes", tree.Len(),
		"leaves", len(tree.Leaves()))

	src, err := iofasta.NewDirSource(bc.FastaDir, bc.FastaExt, res.Outputs()...)
	if err != nil {
		return nil, err
	}
	if len(src.Names()) == 0 {
		return nil, NoTaxaError(bc.FastaDir, bc.FastaExt)
	}

	var outs iofs.PendingSet
	committed := false
	defer func() {
		if !committed {
			outs.Abort()
		}
	}()

	taxa, err := b.aggregate(src, &outs, res.FastaPath)
	if err != nil {
		return nil, err
	}
	res.Taxa = taxa.Len()
	res.Sequences = taxa.Sequences()
	res.Residues = taxa.Residues()

	res.LastTaxID, err = b.linearize(tree, taxa, &outs, res)
	if err != nil {
		return nil, err
	}

	if err = outs.Commit(); err != nil {
		return nil, err
	}
	committed = true

	b.summary(res, time.Since(startTime))
	return res, nil
}

func readTree(path string) (*phylo.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TreeReadError(path, err)
	}
	defer f.Close()

	res, err := phylo.Parse(f)
	if err != nil {
		return nil, TreeReadError(path, err)
	}
	return res, nil
}

func (b *builder) aggregate(
	src *iofasta.DirSource,
	outs *iofs.PendingSet,
	path string,
) (*seqs.Table, error) {
	f, err := outs.Create(path)
	if err != nil {
		return nil, err
	}
	w := iofasta.NewWriter(f, config.LineWidth)

	opts := []seqs.Option{seqs.OptLogger(b.log)}
	var bar *pb.ProgressBar
	if b.cfg.Build.WithProgress {
		bar = newProgressBar(len(src.Names()), "FASTA files: ")
		opts = append(opts, seqs.OptProgress(func(string, int) {
			bar.Increment()
		}))
	}

	res, err := seqs.NewAggregator(opts...).Aggregate(src, w)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, wrapError(err)
	}
	if err = w.Flush(); err != nil {
		return nil, wrapError(err)
	}

	b.log.Info("Merged FASTA files",
		"taxa", res.Len(), "sequences", res.Sequences(), "path", path)
	return res, nil
}

func (b *builder) linearize(
	tree *phylo.Node,
	taxa *seqs.Table,
	outs *iofs.PendingSet,
	res *treetax.BuildResult,
) (int, error) {
	var bufs []*bufio.Writer
	for _, path := range []string{res.NodesPath, res.NamesPath, res.SeqIDPath} {
		f, err := outs.Create(path)
		if err != nil {
			return 0, err
		}
		bufs = append(bufs, bufio.NewWriter(f))
	}
	var w taxdump.Writer = taxdump.NewDmpWriter(bufs[0], bufs[1], bufs[2])

	var exp *iosqlite.Exporter
	if res.SQLitePath != "" {
		f, err := outs.Create(res.SQLitePath)
		if err != nil {
			return 0, err
		}
		if exp, err = iosqlite.New(f.TempPath()); err != nil {
			return 0, err
		}
		w = taxdump.MultiWriter(w, exp)
	}

	last, err := linearize.New(taxa, w).Linearize(tree)
	if err == nil {
		for _, bw := range bufs {
			if err = bw.Flush(); err != nil {
				break
			}
		}
	}
	if err != nil {
		if exp != nil {
			exp.Abort()
		}
		if errors.Is(err, linearize.ErrTaxonNotFound) {
			return 0, TaxonNotFoundError(err)
		}
		return 0, wrapError(err)
	}

	if exp != nil {
		if err = exp.Close(); err != nil {
			return 0, err
		}
	}

	b.log.Info("Wrote taxonomy", "last_tax_id", last)
	return last, nil
}

func (b *builder) summary(res *treetax.BuildResult, dur time.Duration) {
	b.log.Info("Build complete",
		"taxa", res.Taxa,
		"sequences", res.Sequences,
		"residues", res.Residues,
		"last_tax_id", res.LastTaxID,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(`Build complete
Taxa: %s, sequences: %s, residues: %s, tax ids: %s.
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(res.Taxa)),
		humanize.Comma(int64(res.Sequences)),
		humanize.Comma(res.Residues),
		humanize.Comma(int64(res.LastTaxID)),
		gnfmt.TimeString(dur.Seconds()),
	)
}
