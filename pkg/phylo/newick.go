package phylo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrEmptyTree is returned when the input has no tree.
	ErrEmptyTree = errors.New("no tree in input")

	// ErrMultipleTrees is returned when the input has more than one tree.
	ErrMultipleTrees = errors.New("more than one tree in input")
)

// SyntaxError reports a malformed Newick string.
type SyntaxError struct {
	// Offset is the byte offset of the problem in the input.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("newick: %s at byte %d", e.Msg, e.Offset)
}

// metaChars cannot be part of an unquoted label.
const metaChars = "()[]':;,"

// Parse reads a single Newick tree and returns its root.
//
// Labels can be quoted with single quotes, a doubled quote stands for
// a quote inside a quoted label. Comments in square brackets are
// ignored. A numeric label of an internal node is a support value,
// not a name. The final semicolon is optional.
func Parse(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &parser{data: data}
	if err = p.skip(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, ErrEmptyTree
	}

	root, err := p.subtree()
	if err != nil {
		return nil, err
	}

	if err = p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() {
		if p.peek() != ';' {
			return nil, p.errorf("unexpected %q", p.peek())
		}
		p.pos++
	}

	if err = p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("%w: extra data at byte %d",
			ErrMultipleTrees, p.pos)
	}
	return root, nil
}

// ParseString is a convenience wrapper of Parse.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	return p.data[p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// skip moves over whitespace and comments.
func (p *parser) skip() error {
	for !p.eof() {
		switch c := p.peek(); {
		case isSpace(c):
			p.pos++
		case c == '[':
			end := bytes.IndexByte(p.data[p.pos:], ']')
			if end < 0 {
				return p.errorf("unclosed comment")
			}
			p.pos += end + 1
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) subtree() (*Node, error) {
	n := &Node{}

	if err := p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() && p.peek() == '(' {
		p.pos++
		for {
			c, err := p.subtree()
			if err != nil {
				return nil, err
			}
			n.AddChild(c)

			if err = p.skip(); err != nil {
				return nil, err
			}
			if p.eof() {
				return nil, p.errorf("unclosed parenthesis")
			}
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case ')':
				p.pos++
			default:
				return nil, p.errorf("unexpected %q", p.peek())
			}
			break
		}
	}

	label, quoted, err := p.label()
	if err != nil {
		return nil, err
	}
	n.Name = label
	if !n.IsLeaf() && !quoted && label != "" {
		if v, err := strconv.ParseFloat(label, 64); err == nil {
			n.Name = ""
			n.Support = v
			n.HasSupport = true
		}
	}

	if err = p.skip(); err != nil {
		return nil, err
	}
	if !p.eof() && p.peek() == ':' {
		p.pos++
		if err = p.skip(); err != nil {
			return nil, err
		}
		start := p.pos
		for !p.eof() && !isSpace(p.peek()) &&
			strings.IndexByte(metaChars, p.peek()) < 0 {
			p.pos++
		}
		s := string(p.data[start:p.pos])
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &SyntaxError{
				Offset: start,
				Msg:    fmt.Sprintf("bad branch length %q", s),
			}
		}
		n.Length = v
		n.HasLength = true
	}
	return n, nil
}

func (p *parser) label() (string, bool, error) {
	if err := p.skip(); err != nil {
		return "", false, err
	}
	if p.eof() {
		return "", false, nil
	}

	if p.peek() == '\'' {
		start := p.pos
		p.pos++
		var sb strings.Builder
		for {
			if p.eof() {
				return "", true, &SyntaxError{
					Offset: start,
					Msg:    "unclosed quoted label",
				}
			}
			c := p.peek()
			p.pos++
			if c == '\'' {
				if !p.eof() && p.peek() == '\'' {
					sb.WriteByte('\'')
					p.pos++
					continue
				}
				return sb.String(), true, nil
			}
			sb.WriteByte(c)
		}
	}

	start := p.pos
	for !p.eof() && !isSpace(p.peek()) &&
		strings.IndexByte(metaChars, p.peek()) < 0 {
		p.pos++
	}
	return string(p.data[start:p.pos]), false, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Encode writes the tree in Newick format followed by a new line.
// Branch lengths are written with five decimals.
func Encode(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	encodeNode(bw, root)
	bw.WriteString(";\n")
	return bw.Flush()
}

// String returns the Newick representation of the tree without
// the trailing new line.
func (n *Node) String() string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	encodeNode(bw, n)
	bw.WriteByte(';')
	bw.Flush()
	return sb.String()
}

func encodeNode(w *bufio.Writer, n *Node) {
	if !n.IsLeaf() {
		w.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				w.WriteByte(',')
			}
			encodeNode(w, c)
		}
		w.WriteByte(')')
	}

	switch {
	case n.Name != "":
		name := quoteLabel(n.Name)
		// numeric names of internal nodes would be read back as support
		if !n.IsLeaf() && name == n.Name {
			if _, err := strconv.ParseFloat(name, 64); err == nil {
				name = "'" + name + "'"
			}
		}
		w.WriteString(name)
	case n.HasSupport:
		w.WriteString(strconv.FormatFloat(n.Support, 'g', -1, 64))
	}

	if n.HasLength {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(n.Length, 'f', 5, 64))
	}
}

func quoteLabel(s string) string {
	if !strings.ContainsAny(s, metaChars+" \t\r\n") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
