// Package seqs collects per-taxon sequence collections into a merged
// sequence corpus and a table of taxa.
package seqs

import "strings"

// Record is a raw sequence record as given by a Source.
type Record struct {
	ID       string
	Residues []byte
}

// Sequence is a sequence owned by a taxon. Its ID is prefixed with the
// name of the taxon.
type Sequence struct {
	ID       string
	Length   int
	Residues []byte
}

// Taxon is a leaf taxon with its sequences in insertion order.
type Taxon struct {
	Name    string
	AltName string

	seqs  []*Sequence
	index map[string]int
}

// NewTaxon creates an empty taxon.
func NewTaxon(name string) *Taxon {
	return &Taxon{
		Name:    name,
		AltName: strings.ToLower(name),
		index:   make(map[string]int),
	}
}

// Add appends a sequence. It returns false and keeps the taxon unchanged
// if a sequence with the same ID already exists.
func (t *Taxon) Add(s *Sequence) bool {
	if _, ok := t.index[s.ID]; ok {
		return false
	}
	t.index[s.ID] = len(t.seqs)
	t.seqs = append(t.seqs, s)
	return true
}

// Sequences returns sequences in the order they were added.
func (t *Taxon) Sequences() []*Sequence {
	return t.seqs
}

// Sequence returns a sequence by its ID.
func (t *Taxon) Sequence(id string) (*Sequence, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.seqs[i], true
}

// Len returns the number of sequences.
func (t *Taxon) Len() int {
	return len(t.seqs)
}

// Table keeps taxa by name in insertion order.
type Table struct {
	taxa  []*Taxon
	index map[string]*Taxon
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]*Taxon)}
}

// Add puts a taxon into the table. It returns false if a taxon with
// the same name exists already.
func (t *Table) Add(tx *Taxon) bool {
	if _, ok := t.index[tx.Name]; ok {
		return false
	}
	t.index[tx.Name] = tx
	t.taxa = append(t.taxa, tx)
	return true
}

// Taxon returns a taxon by name.
func (t *Table) Taxon(name string) (*Taxon, bool) {
	tx, ok := t.index[name]
	return tx, ok
}

// Taxa returns all taxa in the order they were added.
func (t *Table) Taxa() []*Taxon {
	return t.taxa
}

// Len returns the number of taxa.
func (t *Table) Len() int {
	return len(t.taxa)
}

// Sequences returns the total number of sequences.
func (t *Table) Sequences() int {
	var res int
	for _, tx := range t.taxa {
		res += tx.Len()
	}
	return res
}

// Residues returns the total length of all sequences.
func (t *Table) Residues() int64 {
	var res int64
	for _, tx := range t.taxa {
		for _, s := range tx.seqs {
			res += int64(s.Length)
		}
	}
	return res
}
