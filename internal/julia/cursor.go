package julia

// cursor is a position within a single line of source text. All scanning is
// byte-oriented; multi-byte runes are opaque text and never match a keyword.
type cursor struct {
	line []byte
	pos  int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.line)
}

// peek returns the byte at the cursor, or 0 at end of line.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.line[c.pos]
}

// peekAt returns the byte at offset n past the cursor, or 0 past end of line.
func (c *cursor) peekAt(n int) byte {
	if c.pos+n >= len(c.line) {
		return 0
	}
	return c.line[c.pos+n]
}

// tryConsume attempts to advance the cursor past literal. It succeeds only
// when literal occurs at the cursor as a whole token: the following byte
// must be end-of-line, whitespace, or '('. Otherwise "class" would match
// inside "classify". On failure the cursor is left where it was.
func (c *cursor) tryConsume(literal string) bool {
	end := c.pos + len(literal)
	if end > len(c.line) || string(c.line[c.pos:end]) != literal {
		return false
	}
	if end < len(c.line) {
		next := c.line[end]
		if next != '(' && !isSpace(next) {
			return false
		}
	}
	c.pos = end
	return true
}

// skipSpace advances the cursor over whitespace.
func (c *cursor) skipSpace() {
	for !c.eof() && isSpace(c.line[c.pos]) {
		c.pos++
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
