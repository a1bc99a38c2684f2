package iofasta

import (
	"io"

	"github.com/TuftsBCB/io/fasta"
	"github.com/TuftsBCB/seq"
)

// Writer writes FASTA records with residues wrapped at a fixed width.
type Writer struct {
	w *fasta.Writer
}

// NewWriter creates a Writer. Residue lines are at most width long.
func NewWriter(w io.Writer, width int) *Writer {
	fw := fasta.NewWriter(w)
	if width > 0 {
		fw.Columns = width
	}
	return &Writer{w: fw}
}

// Write writes one record.
func (w *Writer) Write(id string, residues []byte) error {
	s := seq.Sequence{Name: id, Residues: make([]seq.Residue, len(residues))}
	for i, v := range residues {
		s.Residues[i] = seq.Residue(v)
	}
	return w.w.Write(s)
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
