package iofs

import (
	"os"
	"path/filepath"
)

// Pending is a file that is written under a temporary name next to its
// final path. It appears at the final path only after Commit.
type Pending struct {
	path string
	f    *os.File
	done bool
}

// CreatePending creates a temporary sibling of path.
func CreatePending(path string) (*Pending, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, CreateFileError(path, err)
	}
	return &Pending{path: path, f: f}, nil
}

// Write writes to the temporary file.
func (p *Pending) Write(b []byte) (int, error) {
	n, err := p.f.Write(b)
	if err != nil {
		return n, WriteFileError(p.path, err)
	}
	return n, nil
}

// Path returns the final path.
func (p *Pending) Path() string {
	return p.path
}

// TempPath returns the path of the temporary file. It is useful for
// writers that open files by name.
func (p *Pending) TempPath() string {
	return p.f.Name()
}

// Commit closes the temporary file and moves it to the final path.
func (p *Pending) Commit() error {
	if p.done {
		return nil
	}
	p.done = true
	// CreateTemp makes files readable by the owner only.
	if err := p.f.Chmod(0644); err != nil {
		p.f.Close()
		os.Remove(p.f.Name())
		return WriteFileError(p.path, err)
	}
	if err := p.f.Close(); err != nil {
		os.Remove(p.f.Name())
		return WriteFileError(p.path, err)
	}
	if err := os.Rename(p.f.Name(), p.path); err != nil {
		os.Remove(p.f.Name())
		return CommitFileError(p.path, err)
	}
	return nil
}

// Abort closes and removes the temporary file. It does nothing after
// Commit.
func (p *Pending) Abort() {
	if p.done {
		return
	}
	p.done = true
	p.f.Close()
	os.Remove(p.f.Name())
}

// PendingSet commits or aborts several pending files together.
type PendingSet struct {
	files []*Pending
}

// Create adds a new pending file to the set.
func (s *PendingSet) Create(path string) (*Pending, error) {
	p, err := CreatePending(path)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, p)
	return p, nil
}

// Commit commits all files in the order they were created. On the
// first failure the rest of the files are aborted.
func (s *PendingSet) Commit() error {
	for i, p := range s.files {
		if err := p.Commit(); err != nil {
			for _, rest := range s.files[i+1:] {
				rest.Abort()
			}
			return err
		}
	}
	return nil
}

// Abort removes all files that were not committed.
func (s *PendingSet) Abort() {
	for _, p := range s.files {
		p.Abort()
	}
}
