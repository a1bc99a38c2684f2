package seqs

import (
	"fmt"
	"io"
	"log/slog"
)

// Source gives access to named sequence collections, one per taxon.
type Source interface {
	// Names returns collection names in enumeration order.
	Names() []string
	// Records calls fn for every record of a collection in source order.
	Records(name string, fn func(Record) error) error
}

// Sink receives every collected sequence, in the order of collection.
type Sink interface {
	Write(id string, residues []byte) error
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// OptLogger sets the logger. By default nothing is logged.
func OptLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// OptProgress sets a function called after every collection with the
// name of the taxon and the number of its sequences.
func OptProgress(fn func(name string, n int)) Option {
	return func(a *Aggregator) {
		a.progress = fn
	}
}

// Aggregator merges sequence collections.
type Aggregator struct {
	log      *slog.Logger
	progress func(string, int)
}

// NewAggregator creates an Aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	res := &Aggregator{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Aggregate reads all collections of src. Every sequence gets the id
// "{taxon}_{id}" and is written to sink. A collection that cannot be
// read stops aggregation with an error.
func (a *Aggregator) Aggregate(src Source, sink Sink) (*Table, error) {
	res := NewTable()
	for _, name := range src.Names() {
		tx, err := a.collect(src, sink, name)
		if err != nil {
			return nil, err
		}
		if !res.Add(tx) {
			return nil, fmt.Errorf("duplicate taxon %q", name)
		}
		a.log.Debug("Collected taxon",
			"taxon", name, "sequences", tx.Len())
		if a.progress != nil {
			a.progress(name, tx.Len())
		}
	}
	return res, nil
}

func (a *Aggregator) collect(src Source, sink Sink, name string) (*Taxon, error) {
	tx := NewTaxon(name)
	err := src.Records(name, func(r Record) error {
		s := &Sequence{
			ID:       name + "_" + r.ID,
			Length:   len(r.Residues),
			Residues: r.Residues,
		}
		if !tx.Add(s) {
			a.log.Warn("Duplicate sequence id, skipping",
				"taxon", name, "seq_id", s.ID)
			return nil
		}
		return sink.Write(s.ID, s.Residues)
	})
	if err != nil {
		return nil, fmt.Errorf("taxon %q: %w", name, err)
	}
	return tx, nil
}
