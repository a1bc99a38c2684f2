package iofasta

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/treetax/pkg/seqs"
)

// DirSource provides taxa from a directory with one FASTA file per
// taxon. The name of a taxon is the file name without extension.
type DirSource struct {
	dir   string
	paths map[string]string
	names []string
}

// NewDirSource scans dir for files with the extension ext, plain or
// gzipped. Two files for the same taxon are an error. Files listed in
// exclude are skipped.
func NewDirSource(dir, ext string, exclude ...string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, FastaDirError(dir, err)
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		if abs, err := filepath.Abs(v); err == nil {
			skip[abs] = struct{}{}
		}
	}

	res := &DirSource{dir: dir, paths: make(map[string]string)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		taxon, ok := taxonName(e.Name(), ext)
		if !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if abs, err := filepath.Abs(path); err == nil {
			if _, ok := skip[abs]; ok {
				continue
			}
		}
		if old, ok := res.paths[taxon]; ok {
			return nil, DuplicateTaxonError(taxon, old, path)
		}
		res.paths[taxon] = path
		res.names = append(res.names, taxon)
	}
	slices.Sort(res.names)
	return res, nil
}

func taxonName(file, ext string) (string, bool) {
	var res string
	switch {
	case strings.HasSuffix(file, ext+".gz"):
		res = strings.TrimSuffix(file, ext+".gz")
	case strings.HasSuffix(file, ext):
		res = strings.TrimSuffix(file, ext)
	default:
		return "", false
	}
	return res, res != ""
}

// Names returns taxon names in sorted order.
func (d *DirSource) Names() []string {
	return d.names
}

// Path returns the file of a taxon.
func (d *DirSource) Path(name string) (string, bool) {
	res, ok := d.paths[name]
	return res, ok
}

// Records calls fn for every record of the taxon file in file order.
func (d *DirSource) Records(name string, fn func(seqs.Record) error) error {
	path, ok := d.paths[name]
	if !ok {
		return FastaParseError(filepath.Join(d.dir, name), os.ErrNotExist)
	}

	f, err := Open(path)
	if err != nil {
		return FastaParseError(path, err)
	}
	defer f.Close()

	r := NewReader(f)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return FastaParseError(path, err)
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
}
