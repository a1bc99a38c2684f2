// Package assemble reconstructs a tree from flat taxonomy records.
//
// Nodes are attached in record order under their parent, and parents
// are found by name, not by id. A record whose name is already in the
// tree is skipped as a duplicate. When a name matches several nodes the
// last one in pre-order is used.
package assemble

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gnames/treetax/pkg/phylo"
	"github.com/gnames/treetax/pkg/taxdump"
)

// BranchLength is the length of every branch except the root one.
const BranchLength = 1.0

var (
	// ErrNoRootName is returned when the name table has no root id.
	ErrNoRootName = errors.New("no name for root tax id")

	// ErrNameNotFound is returned when an id has no name.
	ErrNameNotFound = errors.New("no name for tax id")

	// ErrParentNotFound is returned when the parent of a record is not
	// in the tree yet.
	ErrParentNotFound = errors.New("parent not found in tree")
)

// Records is a stream of node records, such as a taxdump.NodeScanner.
type Records interface {
	Scan() bool
	Record() taxdump.NodeRecord
	Err() error
}

// Stats summarizes an assembly.
type Stats struct {
	// Added is the number of attached nodes, the root excluded.
	Added int
	// Duplicates is the number of skipped records.
	Duplicates int
	// Ambiguous is the number of lookups with more than one match.
	Ambiguous int
}

// Assembler builds a tree record by record.
type Assembler struct {
	names taxdump.NameTable
	root  *phylo.Node
	log   *slog.Logger
	stats Stats

	// index is a non-owning view of the tree by name.
	index map[string][]*phylo.Node
}

// New creates an Assembler with a root named after tax id 1.
func New(names taxdump.NameTable, log *slog.Logger) (*Assembler, error) {
	name, ok := names.Lookup(taxdump.RootID)
	if !ok {
		return nil, ErrNoRootName
	}
	return newFromTree(phylo.New(name, 0), names, log), nil
}

func newFromTree(
	root *phylo.Node,
	names taxdump.NameTable,
	log *slog.Logger,
) *Assembler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	res := &Assembler{
		names: names,
		root:  root,
		log:   log,
		index: make(map[string][]*phylo.Node),
	}
	root.Walk(func(n *phylo.Node) bool {
		res.index[n.Name] = append(res.index[n.Name], n)
		return true
	})
	return res
}

// Add processes one node record.
func (a *Assembler) Add(rec taxdump.NodeRecord) error {
	if rec.ID == taxdump.RootID {
		a.log.Debug("Root record is the tree root", "tax_id", rec.ID)
		return nil
	}

	name, ok := a.names.Lookup(rec.ID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNameNotFound, rec.ID)
	}

	if a.Find(name) != nil {
		a.stats.Duplicates++
		a.log.Warn("Duplicate tax id in nodes.dmp, skipping",
			"tax_id", rec.ID, "name", name)
		return nil
	}

	parentName, ok := a.names.Lookup(rec.ParentID)
	if !ok {
		return fmt.Errorf("%w: %d (parent of %d)",
			ErrNameNotFound, rec.ParentID, rec.ID)
	}
	parent := a.Find(parentName)
	if parent == nil {
		return fmt.Errorf("%w: %q (tax id %d, parent of %d)",
			ErrParentNotFound, parentName, rec.ParentID, rec.ID)
	}

	n := phylo.New(name, BranchLength)
	parent.AddChild(n)
	a.index[name] = append(a.index[name], n)
	a.stats.Added++
	return nil
}

// AddAll processes all records of a stream.
func (a *Assembler) AddAll(rs Records) error {
	for rs.Scan() {
		if err := a.Add(rs.Record()); err != nil {
			return err
		}
	}
	return rs.Err()
}

// Find returns the node with the given name, or nil. If several nodes
// have the name, a warning is logged and the last node in pre-order is
// returned.
func (a *Assembler) Find(name string) *phylo.Node {
	nodes := a.index[name]
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}

	all := a.root.FindAll(name)
	res := all[len(all)-1]
	a.stats.Ambiguous++
	a.log.Warn("Duplicate names in tree, taking the last one",
		"name", name, "matches", len(all))
	return res
}

// Tree returns the root of the tree built so far.
func (a *Assembler) Tree() *phylo.Node {
	return a.root
}

// Stats returns counts of the assembly.
func (a *Assembler) Stats() Stats {
	return a.stats
}
