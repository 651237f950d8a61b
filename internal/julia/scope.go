package julia

import "strings"

// scopeStack records the lexical scopes entered so far during a scan.
// Named entries come from module/class/function definitions; empty entries
// are anonymous scopes opened by block keywords such as "if" and "begin".
type scopeStack struct {
	entries []string
}

// push enters a scope. An empty name enters an anonymous scope.
func (s *scopeStack) push(name string) {
	s.entries = append(s.entries, name)
}

// pop leaves the most recent scope. Popping an empty stack is a no-op, so
// unmatched "end" tokens in the input are silently ignored.
func (s *scopeStack) pop() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

func (s *scopeStack) depth() int {
	return len(s.entries)
}

// path renders the stack as a dotted scope path. Anonymous entries
// contribute nothing, so "module Foo / if / class Bar" yields "Foo.Bar".
func (s *scopeStack) path() string {
	var b strings.Builder
	for _, entry := range s.entries {
		if entry == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(entry)
	}
	return b.String()
}
