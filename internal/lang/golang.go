package lang

import (
	"embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/halcyon-dev/srctags/internal/model"
	"github.com/halcyon-dev/srctags/internal/treescan"
)

//go:embed queries/*.scm
var queryFS embed.FS

var (
	goFunctionKind = model.Kind{Letter: 'f', Name: "function", Plural: "functions"}
	goMethodKind   = model.Kind{Letter: 'F', Name: "method", Plural: "methods"}
	goTypeKind     = model.Kind{Letter: 't', Name: "type", Plural: "types"}
)

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		Kinds:      []model.Kind{goFunctionKind, goMethodKind, goTypeKind},
		NewScanner: newGoScanner,
	}
}

func newGoScanner() (Scanner, error) {
	query, err := queryFS.ReadFile("queries/go.scm")
	if err != nil {
		return nil, err
	}
	return treescan.New(treescan.Config{
		Language: golang.GetLanguage(),
		Query:    query,
		Classify: goClassify,
		Scope:    goScope,
	})
}

func goClassify(capture, _ string) (model.Kind, bool) {
	switch capture {
	case "definition.function":
		return goFunctionKind, true
	case "definition.method":
		return goMethodKind, true
	case "definition.type":
		return goTypeKind, true
	}
	return model.Kind{}, false
}

// goScope reports the receiver type as a method's scope, so Scan on a
// method named Close with receiver *File yields scope "File".
func goScope(capture string, defNode *sitter.Node, source []byte) string {
	if capture != "definition.method" {
		return ""
	}
	return goReceiverType(defNode, source)
}

// goReceiverType extracts the receiver type name from a method_declaration
// node. Navigates: method_declaration → parameter_list (receiver) →
// parameter_declaration → type.
func goReceiverType(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "parameter_list" {
			continue
		}
		// The receiver is the parameter_list that precedes the method name.
		if !isReceiverList(node, child) {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			param := child.Child(j)
			if param.Type() == "parameter_declaration" {
				return goTypeName(param, source)
			}
		}
	}
	return ""
}

// goTypeName extracts the type name from a parameter_declaration,
// unwrapping pointer_type if present.
func goTypeName(param *sitter.Node, source []byte) string {
	for i := 0; i < int(param.ChildCount()); i++ {
		child := param.Child(i)
		switch child.Type() {
		case "type_identifier":
			return treescan.NodeText(child, source)
		case "pointer_type":
			for k := 0; k < int(child.ChildCount()); k++ {
				inner := child.Child(k)
				if inner.Type() == "type_identifier" {
					return treescan.NodeText(inner, source)
				}
			}
		}
	}
	return ""
}

// isReceiverList checks if a parameter_list is the receiver (appears before
// the method name).
func isReceiverList(parent, paramList *sitter.Node) bool {
	if parent.Type() != "method_declaration" {
		return false
	}
	foundList := false
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child == paramList {
			foundList = true
			continue
		}
		if foundList && child.Type() == "field_identifier" {
			return true
		}
	}
	return false
}
