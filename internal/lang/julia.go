package lang

import (
	"github.com/halcyon-dev/srctags/internal/julia"
)

func init() {
	Languages["julia"] = &Language{
		Name:       "julia",
		Extensions: []string{".jl", ".julia"},
		Kinds:      julia.Kinds(),
		NewScanner: func() (Scanner, error) {
			return julia.NewScanner(), nil
		},
	}
}
