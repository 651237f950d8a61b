// Package treescan extracts definition tags using tree-sitter, for
// languages where a real grammar is available.
package treescan

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/halcyon-dev/srctags/internal/model"
)

// Config describes how to turn one language's query captures into tags.
type Config struct {
	// Language is the tree-sitter grammar.
	Language *sitter.Language

	// Query is the tag query source. Each pattern must capture the
	// definition node under a "definition.*" name and the identifier under
	// "name".
	Query []byte

	// Classify maps a definition capture name and computed scope to a tag
	// kind. Returning false drops the match.
	Classify func(capture, scope string) (model.Kind, bool)

	// Scope, if non-nil, computes the enclosing scope path for a
	// definition node (e.g. the receiver type of a Go method).
	Scope func(capture string, defNode *sitter.Node, source []byte) string
}

// Scanner runs a compiled tag query against source files. It owns a
// tree-sitter parser and must not be shared across goroutines.
type Scanner struct {
	cfg    Config
	parser *sitter.Parser
	query  *sitter.Query
}

// New compiles the query and constructs a scanner.
func New(cfg Config) (*Scanner, error) {
	q, err := sitter.NewQuery(cfg.Query, cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("compiling query: %w", err)
	}
	p := sitter.NewParser()
	p.SetLanguage(cfg.Language)
	return &Scanner{cfg: cfg, parser: p, query: q}, nil
}

// ScanFile parses source and returns its definition tags. Parse failures
// yield no tags rather than an error.
func (s *Scanner) ScanFile(source []byte, path string) []model.Tag {
	if len(source) == 0 {
		return nil
	}

	tree, err := s.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(s.query, tree.RootNode())

	var tags []model.Tag

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)

		// Each pattern captures the identifier as @name and the whole
		// definition under its kind-specific capture.
		var nameNode, defNode *sitter.Node
		var capture string

		for _, c := range match.Captures {
			cname := s.query.CaptureNameForId(c.Index)
			if cname == "name" {
				nameNode = c.Node
			} else {
				capture = cname
				defNode = c.Node
			}
		}

		if nameNode == nil || defNode == nil || capture == "" {
			continue
		}

		var scope string
		if s.cfg.Scope != nil {
			scope = s.cfg.Scope(capture, defNode, source)
		}

		kind, ok := s.cfg.Classify(capture, scope)
		if !ok {
			continue
		}

		tags = append(tags, model.Tag{
			Name:  NodeText(nameNode, source),
			Kind:  kind,
			Scope: scope,
			Line:  int(nameNode.StartPoint().Row) + 1,
			File:  path,
		})
	}

	return tags
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
