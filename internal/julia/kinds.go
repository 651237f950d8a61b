package julia

import "github.com/halcyon-dev/srctags/internal/model"

// kind identifies which definition keyword introduced a name. kindNone is
// the sentinel for constructs that produce no tag, such as "class <<".
type kind int

const (
	kindNone kind = iota - 1
	kindFunction
	kindClass
	kindModule
	kindSingleton
	kindDescribe
	kindContext
	kindMacro
	kindType
	kindImmutable
)

// kindTable maps each kind to its ctags letter and labels. Indexed by kind;
// kindNone has no entry.
var kindTable = [...]model.Kind{
	kindFunction:  {Letter: 'f', Name: "function", Plural: "functions"},
	kindClass:     {Letter: 'c', Name: "class", Plural: "classes"},
	kindModule:    {Letter: 'm', Name: "module", Plural: "modules"},
	kindSingleton: {Letter: 'F', Name: "singleton method", Plural: "singleton methods"},
	kindDescribe:  {Letter: 'd', Name: "describe", Plural: "describes"},
	kindContext:   {Letter: 'C', Name: "context", Plural: "contexts"},
	kindMacro:     {Letter: 'M', Name: "macro", Plural: "macros"},
	kindType:      {Letter: 't', Name: "type", Plural: "types"},
	kindImmutable: {Letter: 'i', Name: "immutable", Plural: "immutables"},
}

// Kinds returns the full kind table for registration with the language
// registry.
func Kinds() []model.Kind {
	kinds := make([]model.Kind, len(kindTable))
	copy(kinds, kindTable[:])
	return kinds
}
