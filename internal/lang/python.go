package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/halcyon-dev/srctags/internal/model"
	"github.com/halcyon-dev/srctags/internal/treescan"
)

var (
	pyFunctionKind = model.Kind{Letter: 'f', Name: "function", Plural: "functions"}
	pyClassKind    = model.Kind{Letter: 'c', Name: "class", Plural: "classes"}
	pyMethodKind   = model.Kind{Letter: 'm', Name: "method", Plural: "methods"}
)

func init() {
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		Kinds:      []model.Kind{pyFunctionKind, pyClassKind, pyMethodKind},
		NewScanner: newPythonScanner,
	}
}

func newPythonScanner() (Scanner, error) {
	query, err := queryFS.ReadFile("queries/python.scm")
	if err != nil {
		return nil, err
	}
	return treescan.New(treescan.Config{
		Language: python.GetLanguage(),
		Query:    query,
		Classify: pyClassify,
		Scope:    pyScope,
	})
}

// pyClassify reclassifies a function inside a class as a method.
func pyClassify(capture, scope string) (model.Kind, bool) {
	switch capture {
	case "definition.class":
		return pyClassKind, true
	case "definition.function":
		if scope != "" {
			return pyMethodKind, true
		}
		return pyFunctionKind, true
	}
	return model.Kind{}, false
}

func pyScope(capture string, defNode *sitter.Node, source []byte) string {
	if capture != "definition.function" {
		return ""
	}
	return pyEnclosingClass(defNode, source)
}

// pyEnclosingClass returns the name of the class whose body directly
// contains the function, or "" for a module-level function. Decorated
// definitions are unwrapped before checking the parent chain.
func pyEnclosingClass(funcNode *sitter.Node, source []byte) string {
	node := funcNode
	if p := node.Parent(); p != nil && p.Type() == "decorated_definition" {
		node = p
	}
	parent := node.Parent()
	if parent == nil || parent.Type() != "block" {
		return ""
	}
	classNode := parent.Parent()
	if classNode == nil || classNode.Type() != "class_definition" {
		return ""
	}
	for i := 0; i < int(classNode.ChildCount()); i++ {
		child := classNode.Child(i)
		if child.Type() == "identifier" {
			return treescan.NodeText(child, source)
		}
	}
	return ""
}
