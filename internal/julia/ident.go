package julia

import "strings"

// operators lists the symbols that may name an operator method, as in
// "function []=(key, val)". Longer alternatives come before their prefixes
// so the most specific symbol wins.
var operators = []string{
	"[]=", "[]",
	"**",
	"<=>", "===", "==", "=~", "!=", "!~",
	"<=", "<<", "<",
	">=", ">>", ">",
	"+@", "-@", "+", "-",
	"*", "/", "%",
	"!", "~", "&", "^", "|",
	"`",
}

// parseOperator attempts to consume an operator method name at the cursor.
func parseOperator(c *cursor) (string, bool) {
	for _, op := range operators {
		if c.tryConsume(op) {
			return op, true
		}
	}
	return "", false
}

// parseName consumes the name defined after a definition keyword and
// returns it along with the (possibly reclassified) kind.
//
// Method names differ from class and module names: they may be operator
// symbols, may end in '?', '!' or '=' (part of the name), and may contain a
// '.' marking a singleton method such as "function Foo.bar". Describe and
// context names are free-form strings, so far more characters are allowed.
func parseName(c *cursor, k kind) (kind, string) {
	var alsoOK string
	switch {
	case k == kindFunction:
		alsoOK = "_.?!="
	case k == kindDescribe || k == kindContext:
		alsoOK = ` ,".#_?!='/-`
	default:
		alsoOK = "_"
	}

	c.skipSpace()

	// "class << Receiver" opens an anonymous singleton class. There is no
	// sensible name to tag, so report the sentinel kind.
	if k == kindClass && c.peek() == '<' && c.peekAt(1) == '<' {
		return kindNone, ""
	}

	if k == kindFunction || k == kindSingleton {
		if op, ok := parseOperator(c); ok {
			return k, op
		}
	}

	var name strings.Builder
	for !c.eof() {
		ch := c.peek()
		if !isAlnum(ch) && !strings.ContainsRune(alsoOK, rune(ch)) {
			break
		}
		name.WriteByte(ch)
		c.pos++

		if k == kindFunction {
			// A dot means the name so far was a receiver: discard it and
			// re-parse the rest as a singleton method. The singleton branch
			// never redirects again, so this recurses at most once.
			if ch == '.' {
				return parseName(c, kindSingleton)
			}
			// These characters end a method name once included.
			if ch == '?' || ch == '!' || ch == '=' {
				break
			}
		}
	}
	return k, name.String()
}
