// Package taxdump reads and writes flat NCBI-style taxonomy dumps:
// nodes.dmp, names.dmp and seqid2taxid.map.
package taxdump

import (
	"fmt"
	"io"
	"strconv"
)

const (
	// RootID is the taxonomic id of the root of every taxonomy.
	RootID = 1

	// NoRank is the only rank used by this package.
	NoRank = "no rank"

	// ScientificName is the name class of real nodes.
	ScientificName = "scientific name"

	// Synonym is the name class of the 'all' name of the root.
	Synonym = "synonym"

	// RootName is the scientific name of the root.
	RootName = "root"

	// RootSynonym is the synonym of the root.
	RootSynonym = "all"
)

// NodeRecord is a line of nodes.dmp.
type NodeRecord struct {
	ID       int
	ParentID int
	Rank     string
}

// String returns the record as a nodes.dmp line.
func (r NodeRecord) String() string {
	return strconv.Itoa(r.ID) + "\t|\t" + strconv.Itoa(r.ParentID) +
		"\t|\t" + r.Rank + "\t|\n"
}

// NameRecord is a line of names.dmp.
type NameRecord struct {
	ID int
	// Name is the primary name of the node.
	Name string
	// AltName is a unique or alternative name, this package uses
	// the lower-cased Name.
	AltName string
	// Class is the name class, such as 'scientific name'.
	Class string
}

// String returns the record as a names.dmp line. An empty AltName
// leaves a bare separator, as in the root preamble
// "1\t|\tall\t|\t|\tsynonym\t|".
func (r NameRecord) String() string {
	alt := "\t|\t|\t"
	if r.AltName != "" {
		alt = "\t|\t" + r.AltName + "\t|\t"
	}
	return strconv.Itoa(r.ID) + "\t|\t" + r.Name + alt + r.Class + "\t|\n"
}

// SeqIDRecord is a line of seqid2taxid.map.
type SeqIDRecord struct {
	SeqID string
	TaxID int
}

// String returns the record as a seqid2taxid.map line.
func (r SeqIDRecord) String() string {
	return r.SeqID + "\t" + strconv.Itoa(r.TaxID) + "\n"
}

// Writer receives flat taxonomy records.
type Writer interface {
	WriteNode(NodeRecord) error
	WriteName(NameRecord) error
	WriteSeqID(SeqIDRecord) error
}

// DmpWriter writes records as text lines to three streams.
type DmpWriter struct {
	nodes io.Writer
	names io.Writer
	seqID io.Writer
}

// NewDmpWriter creates a Writer for nodes.dmp, names.dmp and
// seqid2taxid.map streams.
func NewDmpWriter(nodes, names, seqID io.Writer) *DmpWriter {
	return &DmpWriter{nodes: nodes, names: names, seqID: seqID}
}

// WriteNode writes a nodes.dmp line.
func (w *DmpWriter) WriteNode(r NodeRecord) error {
	_, err := io.WriteString(w.nodes, r.String())
	return err
}

// WriteName writes a names.dmp line.
func (w *DmpWriter) WriteName(r NameRecord) error {
	_, err := io.WriteString(w.names, r.String())
	return err
}

// WriteSeqID writes a seqid2taxid.map line.
func (w *DmpWriter) WriteSeqID(r SeqIDRecord) error {
	_, err := io.WriteString(w.seqID, r.String())
	return err
}

type multiWriter []Writer

// MultiWriter duplicates every record to all given writers.
func MultiWriter(ws ...Writer) Writer {
	return multiWriter(ws)
}

func (mw multiWriter) WriteNode(r NodeRecord) error {
	for _, w := range mw {
		if err := w.WriteNode(r); err != nil {
			return err
		}
	}
	return nil
}

func (mw multiWriter) WriteName(r NameRecord) error {
	for _, w := range mw {
		if err := w.WriteName(r); err != nil {
			return err
		}
	}
	return nil
}

func (mw multiWriter) WriteSeqID(r SeqIDRecord) error {
	for _, w := range mw {
		if err := w.WriteSeqID(r); err != nil {
			return err
		}
	}
	return nil
}

// WritePreamble writes the root node and its two names.
func WritePreamble(w Writer) error {
	err := w.WriteNode(NodeRecord{ID: RootID, ParentID: RootID, Rank: NoRank})
	if err != nil {
		return fmt.Errorf("root node: %w", err)
	}
	names := []NameRecord{
		{ID: RootID, Name: RootSynonym, Class: Synonym},
		{ID: RootID, Name: RootName, Class: ScientificName},
	}
	for _, v := range names {
		if err = w.WriteName(v); err != nil {
			return fmt.Errorf("root name: %w", err)
		}
	}
	return nil
}
