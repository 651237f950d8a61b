// srctags generates definition tags for source trees, ctags-style.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/halcyon-dev/srctags/internal/discover"
	"github.com/halcyon-dev/srctags/internal/format"
	"github.com/halcyon-dev/srctags/internal/lang"
	"github.com/halcyon-dev/srctags/internal/model"
)

var version = "dev"

const defaultMaxFileSize = 1_000_000 // 1 MB

func main() {
	args := os.Args[1:]
	var err error
	if len(args) > 0 && args[0] == "kinds" {
		err = runKinds(args[1:], os.Stdout, os.Stderr)
	} else {
		err = run(args, os.Stdout, os.Stderr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("srctags", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		style       string
		langs       string
		cachePath   string
		maxFileSize int
		showVersion bool
	)

	fs.StringVar(&style, "f", string(format.Ctags), "output format: ctags, json or table")
	fs.StringVar(&style, "format", string(format.Ctags), "output format: ctags, json or table")
	fs.StringVar(&langs, "l", "", "comma-separated languages to include")
	fs.StringVar(&langs, "langs", "", "comma-separated languages to include")
	fs.StringVar(&cachePath, "cache", "", "cache file path")
	fs.IntVar(&maxFileSize, "max-file-size", defaultMaxFileSize, "skip files larger than this many bytes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "srctags %s\n", version)
		return nil
	}

	if !format.Valid(format.Style(style)) {
		return fmt.Errorf("unsupported format %q", style)
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}

	var langFilter []string
	if langs != "" {
		for _, name := range strings.Split(langs, ",") {
			name = strings.TrimSpace(name)
			if _, ok := lang.Languages[name]; !ok {
				return fmt.Errorf("unsupported language %q", name)
			}
			langFilter = append(langFilter, name)
		}
	}

	// A single file is scanned directly; a directory is walked.
	var files []discover.FileEntry
	if info.IsDir() {
		files, err = discover.Files(root, langFilter)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
	} else {
		langName := lang.ForExtension(filepath.Ext(root))
		if langName == "" {
			return fmt.Errorf("%s: unsupported file type", root)
		}
		root, files = filepath.Dir(root), []discover.FileEntry{
			{Path: filepath.Base(root), Language: langName},
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no taggable files found")
	}

	// Check cache freshness
	if cachePath != "" && cacheIsFresh(cachePath, root, files) {
		data, err := os.ReadFile(cachePath)
		if err == nil {
			_, _ = stdout.Write(data)
			return nil
		}
	}

	// Filter by size
	files = filterBySize(root, files, maxFileSize, stderr)
	if len(files) == 0 {
		return fmt.Errorf("no taggable files found (all exceeded size limit)")
	}

	// Scan files concurrently
	fileInfos := scanFilesConcurrent(root, files, stderr)
	if len(fileInfos) == 0 {
		return fmt.Errorf("no files could be scanned")
	}

	var out strings.Builder
	if err := format.Write(&out, format.Style(style), fileInfos); err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	// Write cache
	if cachePath != "" {
		_ = os.WriteFile(cachePath, []byte(out.String()), 0o644)
	}

	_, _ = io.WriteString(stdout, out.String())
	return nil
}

func cacheIsFresh(cachePath, root string, files []discover.FileEntry) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	cacheMtime := cacheInfo.ModTime()

	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			return false
		}
		if !fi.ModTime().Before(cacheMtime) {
			return false
		}
	}
	return true
}

func filterBySize(root string, files []discover.FileEntry, maxSize int, stderr io.Writer) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if fi.Size() > int64(maxSize) {
			_, _ = fmt.Fprintf(stderr, "Warning: %s: skipped (>%d bytes)\n", f.Path, maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// scanFilesConcurrent runs one worker per CPU over the file list. Scanners
// are created per goroutine because they are not safe to share; results are
// reassembled in input order so output is deterministic.
func scanFilesConcurrent(root string, files []discover.FileEntry, stderr io.Writer) []model.FileInfo {
	type result struct {
		index int
		info  model.FileInfo
		ok    bool
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	var stderrMu sync.Mutex

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			scanners := make(map[string]lang.Scanner)

			for idx := range work {
				f := files[idx]
				sc, ok := scanners[f.Language]
				if !ok {
					var err error
					sc, err = lang.Languages[f.Language].NewScanner()
					if err != nil {
						stderrMu.Lock()
						_, _ = fmt.Fprintf(stderr, "Warning: failed to build %s scanner: %v\n", f.Language, err)
						stderrMu.Unlock()
						continue
					}
					scanners[f.Language] = sc
				}

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					stderrMu.Lock()
					_, _ = fmt.Fprintf(stderr, "Warning: failed to read %s: %v\n", f.Path, err)
					stderrMu.Unlock()
					continue
				}

				results <- result{
					index: idx,
					info: model.FileInfo{
						Path:     f.Path,
						Language: f.Language,
						Tags:     sc.ScanFile(source, f.Path),
					},
					ok: true,
				}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order
	indexed := make([]model.FileInfo, len(files))
	valid := make([]bool, len(files))
	for r := range results {
		indexed[r.index] = r.info
		valid[r.index] = r.ok
	}

	var fileInfos []model.FileInfo
	for i, v := range valid {
		if v {
			fileInfos = append(fileInfos, indexed[i])
		}
	}

	return fileInfos
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-f": true, "--f": true,
	"-format": true, "--format": true,
	"-l": true, "--l": true,
	"-langs": true, "--langs": true,
	"-cache": true, "--cache": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
