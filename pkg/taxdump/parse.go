package taxdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for a line with too few fields or with
// a non-numeric id.
var ErrMalformedLine = errors.New("malformed line")

const maxLineSize = 1 << 20

// splitFields splits a pipe-delimited line and trims whitespace
// around every field. The empty field after the final pipe is dropped.
func splitFields(line string) []string {
	fields := strings.Split(line, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if n := len(fields); n > 1 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields
}

func parseID(field, what string) (int, error) {
	id, err := strconv.Atoi(field)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: bad %s %q", ErrMalformedLine, what, field)
	}
	return id, nil
}

// ParseNameLine parses a names.dmp line. The line needs at least four
// fields: id, name, alternative name and name class.
func ParseNameLine(line string) (NameRecord, error) {
	var res NameRecord
	fields := splitFields(line)
	if len(fields) < 4 {
		return res, fmt.Errorf("%w: names.dmp needs 4 fields, got %d",
			ErrMalformedLine, len(fields))
	}

	id, err := parseID(fields[0], "tax id")
	if err != nil {
		return res, err
	}

	res = NameRecord{
		ID:      id,
		Name:    fields[1],
		AltName: fields[2],
		Class:   fields[3],
	}
	return res, nil
}

// ParseNodeLine parses a nodes.dmp line. The line needs at least three
// fields: id, parent id and rank. Further NCBI columns are ignored.
func ParseNodeLine(line string) (NodeRecord, error) {
	var res NodeRecord
	fields := splitFields(line)
	if len(fields) < 3 {
		return res, fmt.Errorf("%w: nodes.dmp needs 3 fields, got %d",
			ErrMalformedLine, len(fields))
	}

	id, err := parseID(fields[0], "tax id")
	if err != nil {
		return res, err
	}
	parentID, err := parseID(fields[1], "parent tax id")
	if err != nil {
		return res, err
	}

	res = NodeRecord{ID: id, ParentID: parentID, Rank: fields[2]}
	return res, nil
}

// Name is the resolved name of a taxonomic id.
type Name struct {
	Name    string
	AltName string
	Class   string
}

// NameTable maps taxonomic ids to their names.
type NameTable map[int]Name

// Add puts a name record into the table. A later record replaces an
// earlier one for the same id whatever its class.
func (t NameTable) Add(r NameRecord) {
	t[r.ID] = Name{Name: r.Name, AltName: r.AltName, Class: r.Class}
}

// Lookup returns the name of an id.
func (t NameTable) Lookup(id int) (string, bool) {
	n, ok := t[id]
	return n.Name, ok
}

// ReadNames reads names.dmp into a NameTable. Blank lines are skipped,
// any malformed line fails the whole read.
func ReadNames(r io.Reader) (NameTable, error) {
	res := make(NameTable)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var count int
	for sc.Scan() {
		count++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseNameLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", count, err)
		}
		res.Add(rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// NodeScanner reads nodes.dmp records one by one in file order.
type NodeScanner struct {
	sc   *bufio.Scanner
	line int
	rec  NodeRecord
	err  error
}

// NewNodeScanner creates a NodeScanner for a nodes.dmp stream.
func NewNodeScanner(r io.Reader) *NodeScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &NodeScanner{sc: sc}
}

// Scan advances to the next record. It returns false at the end of
// input or on the first error.
func (s *NodeScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.line++
		line := s.sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseNodeLine(line)
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.line, err)
			return false
		}
		s.rec = rec
		return true
	}
	s.err = s.sc.Err()
	return false
}

// Record returns the record read by the last Scan.
func (s *NodeScanner) Record() NodeRecord {
	return s.rec
}

// Line returns the line number of the last record.
func (s *NodeScanner) Line() int {
	return s.line
}

// Err returns the first error met by Scan.
func (s *NodeScanner) Err() error {
	return s.err
}
