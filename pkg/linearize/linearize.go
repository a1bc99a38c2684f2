// Package linearize assigns taxonomic ids to the nodes of a tree and
// emits them as flat taxonomy records.
//
// Ids are assigned in pre-order, children in the order given by the
// tree. Id 1 is the fixed root of the taxonomy, so the root of the tree
// gets id 2 and a tree of N nodes uses ids 2..N+1.
package linearize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/treetax/pkg/phylo"
	"github.com/gnames/treetax/pkg/seqs"
	"github.com/gnames/treetax/pkg/taxdump"
)

// ErrTaxonNotFound is returned when a leaf label has no taxon.
var ErrTaxonNotFound = errors.New("taxon not found")

// Lookup finds taxa by leaf label.
type Lookup interface {
	Taxon(name string) (*seqs.Taxon, bool)
}

// Linearizer writes a tree as flat taxonomy records.
type Linearizer struct {
	taxa Lookup
	w    taxdump.Writer
}

// New creates a Linearizer that takes sequences of leaves from taxa and
// writes records to w.
func New(taxa Lookup, w taxdump.Writer) *Linearizer {
	return &Linearizer{taxa: taxa, w: w}
}

// Validate checks that every leaf of the tree has a taxon. The error
// lists all missing labels.
func (l *Linearizer) Validate(root *phylo.Node) error {
	var missing []string
	for _, leaf := range root.Leaves() {
		if _, ok := l.taxa.Taxon(leaf.Name); !ok {
			missing = append(missing, strconv.Quote(leaf.Name))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrTaxonNotFound, strings.Join(missing, ", "))
	}
	return nil
}

// Linearize validates the tree, writes the root preamble and then the
// whole tree under the root id. It returns the last id used. Nothing
// is written if validation fails.
func (l *Linearizer) Linearize(root *phylo.Node) (int, error) {
	if err := l.Validate(root); err != nil {
		return 0, err
	}
	if err := taxdump.WritePreamble(l.w); err != nil {
		return 0, err
	}
	return l.Subtree(root, taxdump.RootID, taxdump.RootID)
}

// Subtree writes records of a node and its descendants. The node gets
// lastID+1 and is attached to parentID. It returns the last id used,
// so sibling subtrees of a forest can be numbered by successive calls.
func (l *Linearizer) Subtree(n *phylo.Node, parentID, lastID int) (int, error) {
	id := lastID + 1
	name := n.Name
	if name == "" && !n.IsLeaf() {
		name = "node" + strconv.Itoa(id)
	}

	var tx *seqs.Taxon
	if n.IsLeaf() {
		var ok bool
		if tx, ok = l.taxa.Taxon(name); !ok {
			return lastID, fmt.Errorf("%w: %q", ErrTaxonNotFound, name)
		}
	}

	err := l.w.WriteName(taxdump.NameRecord{
		ID:      id,
		Name:    name,
		AltName: strings.ToLower(name),
		Class:   taxdump.ScientificName,
	})
	if err != nil {
		return lastID, err
	}
	err = l.w.WriteNode(taxdump.NodeRecord{
		ID:       id,
		ParentID: parentID,
		Rank:     taxdump.NoRank,
	})
	if err != nil {
		return lastID, err
	}

	if tx != nil {
		for _, s := range tx.Sequences() {
			err = l.w.WriteSeqID(taxdump.SeqIDRecord{SeqID: s.ID, TaxID: id})
			if err != nil {
				return lastID, err
			}
		}
		return id, nil
	}

	last := id
	for _, c := range n.Children {
		if last, err = l.Subtree(c, id, last); err != nil {
			return last, err
		}
	}
	return last, nil
}
