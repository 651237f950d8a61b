// Package julia extracts definition tags from Julia-flavored source files
// using a line-oriented heuristic scanner.
//
// The language is block-structured: "module", "class", "function" and
// friends open scopes that a matching "end" closes. There is no real
// tokenizer here; each line is classified on its own, definitions are only
// recognized at the start of a line, and a stack of entered scopes turns
// nesting into dotted scope paths such as "Foo.Bar". The approximation is
// deliberate — it trades exactness at rare constructs (here-documents,
// string interpolation, multi-line definition headers) for speed and
// simplicity.
package julia

import (
	"bufio"
	"bytes"
	"io"

	"github.com/halcyon-dev/srctags/internal/model"
)

// maxLineLen bounds the line buffer; longer lines end the scan early.
const maxLineLen = 1024 * 1024

// Scanner implements the lang.Scanner interface for Julia sources. It holds
// no state; each ScanFile call owns a fresh scan state.
type Scanner struct{}

// NewScanner returns a Scanner ready for use.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanFile extracts all definition tags from source. path is recorded on
// each tag and not otherwise interpreted.
func (*Scanner) ScanFile(source []byte, path string) []model.Tag {
	var tags []model.Tag
	Scan(bytes.NewReader(source), path, func(t model.Tag) {
		tags = append(tags, t)
	})
	return tags
}

// Scan reads successive lines from r and invokes emit once per recognized
// definition. Scanning never fails: malformed input degrades to a missing
// or spurious tag, and a read error is treated as end of input.
func Scan(r io.Reader, path string, emit func(model.Tag)) {
	s := &scanner{path: path, emit: emit}
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	lineNum := 0
	for lines.Scan() {
		lineNum++
		s.scanLine(lines.Bytes(), lineNum)
	}
}

// scanner is the per-file scan state: the stack of entered scopes and the
// block-comment flag. One scanner exists per file scan and is never shared.
type scanner struct {
	path           string
	emit           func(model.Tag)
	nesting        scopeStack
	inBlockComment bool
}

func (s *scanner) scanLine(line []byte, lineNum int) {
	c := &cursor{line: line}

	// Block comment markers are only recognized at column 0.
	if c.tryConsume("=begin") {
		s.inBlockComment = true
		return
	}
	if c.tryConsume("=end") {
		s.inBlockComment = false
		return
	}

	c.skipSpace()

	// Statement keywords such as "if" and "while" open a scope that a later
	// "end" closes. This also fires for single-line modifier uses, leaving
	// a scope with no matching "end" — an accepted imprecision of
	// line-based scanning.
	if c.tryConsume("case") ||
		c.tryConsume("for") ||
		c.tryConsume("if") ||
		c.tryConsume("unless") ||
		c.tryConsume("quote") ||
		c.tryConsume("let") ||
		c.tryConsume("begin") ||
		c.tryConsume("catch") ||
		c.tryConsume("while") {
		s.nesting.push("")
	}

	// Definitions are recognized only at the beginning of a line.
	if c.tryConsume("function") {
		s.readAndEmit(c, kindFunction, lineNum)
	} else if c.tryConsume("class") {
		s.readAndEmit(c, kindClass, lineNum)
	} else if c.tryConsume("module") {
		s.readAndEmit(c, kindModule, lineNum)
	} else if c.tryConsume("describe") {
		s.readAndEmit(c, kindDescribe, lineNum)
	} else if c.tryConsume("context") {
		s.readAndEmit(c, kindContext, lineNum)
	} else if c.tryConsume("macro") {
		s.readAndEmit(c, kindMacro, lineNum)
	} else if c.tryConsume("type") {
		s.readAndEmit(c, kindType, lineNum)
	} else if c.tryConsume("immutable") {
		s.readAndEmit(c, kindImmutable, lineNum)
	}

	// Sweep the rest of the line for scope openers and closers so that
	// trailing "do" blocks and "end" tokens keep the stack balanced.
	for !c.eof() {
		if s.inBlockComment || isSpace(c.peek()) {
			c.pos++
		} else if c.peek() == '#' {
			// Comment to end of line.
			return
		} else if c.tryConsume("begin") || c.tryConsume("do") {
			s.nesting.push("")
		} else if c.tryConsume("end") {
			s.nesting.pop()
		} else if c.peek() == '"' {
			// Skip string literals. Escapes and interpolation are not
			// handled.
			for c.pos++; !c.eof() && c.peek() != '"'; c.pos++ {
			}
		} else {
			// Opaque token: one char, plus the rest of an identifier run.
			c.pos++
			for !c.eof() && (isAlnum(c.peek()) || c.peek() == '_') {
				c.pos++
			}
		}
	}
}

// readAndEmit parses the name following a definition keyword and emits a
// tag for it. The keyword must be followed by whitespace; "function" at end
// of line or "function(" names nothing and produces no tag, as does the
// anonymous "class <<" form.
func (s *scanner) readAndEmit(c *cursor, expected kind, lineNum int) {
	if !isSpace(c.peek()) {
		return
	}
	actual, name := parseName(c, expected)
	if actual == kindNone || name == "" {
		return
	}
	s.emitTag(name, actual, lineNum)
}

// emitTag records a tag at the current nesting, then enters the new scope.
// The ordering matters: the definition's own tag carries the enclosing
// scope, while everything defined inside it sees this name as part of its
// scope path.
func (s *scanner) emitTag(name string, k kind, lineNum int) {
	s.emit(model.Tag{
		Name:  name,
		Kind:  kindTable[k],
		Scope: s.nesting.path(),
		Line:  lineNum,
		File:  s.path,
	})
	s.nesting.push(name)
}
