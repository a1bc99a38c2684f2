// Package iofasta reads and writes FASTA files.
package iofasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/io/fasta"
	"github.com/gnames/treetax/pkg/seqs"
)

// ErrEmptyID is returned for a header without identifier.
var ErrEmptyID = errors.New("header without identifier")

var gzipMagic = []byte{0x1f, 0x8b}

type gzipFile struct {
	*gzip.Reader
	fh *os.File
}

func (g gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.fh.Close())
}

// Open opens a FASTA file. Gzipped files are recognized by the '.gz'
// suffix or by their magic number.
func Open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(fh)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		fh.Close()
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") && !bytes.Equal(magic, gzipMagic) {
		return struct {
			io.Reader
			io.Closer
		}{Reader: br, Closer: fh}, nil
	}

	gr, err := gzip.NewReader(br)
	if err != nil {
		fh.Close()
		return nil, err
	}
	return gzipFile{Reader: gr, fh: fh}, nil
}

// Reader reads FASTA records one by one. The identifier of a record is
// the first word of its header, residues are kept as they are with line
// breaks removed.
type Reader struct {
	r     *fasta.Reader
	count int
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader {
	fr := fasta.NewReader(r)
	fr.TrustSequences = true
	return &Reader{r: fr}
}

// Next returns the next record or io.EOF when there are no more.
func (r *Reader) Next() (seqs.Record, error) {
	var res seqs.Record
	// ReadSequence, unlike Read, does not panic on a header without a
	// name.
	s, err := r.r.ReadSequence(fasta.TranslateNormal)
	if err != nil && (err != io.EOF || s.IsNull()) {
		return res, err
	}
	r.count++

	fields := strings.Fields(s.Name)
	if len(fields) == 0 {
		return res, fmt.Errorf("record %d: %w", r.count, ErrEmptyID)
	}
	res.ID = fields[0]
	if len(s.Residues) > 0 {
		res.Residues = make([]byte, len(s.Residues))
		for i, v := range s.Residues {
			res.Residues[i] = byte(v)
		}
	}
	return res, nil
}
