// Package lang provides a language registry mapping file extensions to
// tag scanners and their definition kind tables.
package lang

import (
	"sync"

	"github.com/halcyon-dev/srctags/internal/model"
)

// Scanner extracts definition tags from a single source file. Scanning is
// best-effort and never fails: unreadable or malformed input yields fewer
// tags, not an error.
type Scanner interface {
	ScanFile(source []byte, path string) []model.Tag
}

// Language holds the scanner configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	Kinds      []model.Kind

	// NewScanner constructs a scanner for this language. Scanners are not
	// required to be safe for concurrent use; each goroutine must create
	// its own.
	NewScanner func() (Scanner, error)
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if
// unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[ext]
}
