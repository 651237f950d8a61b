package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/halcyon-dev/srctags/internal/discover"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func createSampleRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "app.jl", `module Foo
  class Bar
    function baz
    end
  end
end
`)
	writeTestFile(t, dir, "ops.jl", `function []=(key, val)
end
`)
	return dir
}

func TestRunCtagsOutput(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "!_TAG_FILE_FORMAT") {
		t.Errorf("missing ctags header:\n%s", out)
	}
	for _, want := range []string{
		"Foo\tapp.jl\t1;\"\tm",
		"Bar\tapp.jl\t2;\"\tc\tscope:Foo",
		"baz\tapp.jl\t3;\"\tf\tscope:Foo.Bar",
		"[]=\tops.jl\t1;\"\tf",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunJSONFormat(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-f", "json", dir}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, `"name":"baz"`) {
		t.Errorf("missing baz entry:\n%s", out)
	}
	if !strings.Contains(out, `"scope":"Foo.Bar"`) {
		t.Errorf("missing scope:\n%s", out)
	}
}

func TestRunSingleFile(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{filepath.Join(dir, "app.jl")}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "baz\tapp.jl") {
		t.Errorf("missing baz from single-file scan:\n%s", out)
	}
	if strings.Contains(out, "ops.jl") {
		t.Errorf("single-file scan should not include siblings:\n%s", out)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-f", "xml", t.TempDir()}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestRunUnsupportedLanguage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-l", "rust", t.TempDir()}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "readme.txt", "nothing here")

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "no taggable files") {
		t.Fatalf("expected no taggable files error, got %v", err)
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run([]string{"-V"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "srctags") {
		t.Errorf("version output: %q", stdout.String())
	}
}

func TestRunCache(t *testing.T) {
	t.Parallel()
	dir := createSampleRepo(t)
	cachePath := filepath.Join(t.TempDir(), "tags.cache")

	var stdout1, stderr1 bytes.Buffer
	if err := run([]string{"--cache", cachePath, dir}, &stdout1, &stderr1); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	var stdout2, stderr2 bytes.Buffer
	if err := run([]string{"--cache", cachePath, dir}, &stdout2, &stderr2); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stdout1.String() != stdout2.String() {
		t.Error("cached output differs from fresh output")
	}
}

func TestRunMaxFileSize(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "small.jl", "module Small\nend\n")
	writeTestFile(t, dir, "big.jl", "module Big\nend\n"+strings.Repeat("# padding\n", 100))

	var stdout, stderr bytes.Buffer
	err := run([]string{"--max-file-size", "64", dir}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(stdout.String(), "Big") {
		t.Error("oversized file should be skipped")
	}
	if !strings.Contains(stderr.String(), "big.jl") {
		t.Errorf("expected skip warning, stderr: %s", stderr.String())
	}
}

func TestRunKinds(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := runKinds(nil, &stdout, &stderr); err != nil {
		t.Fatalf("runKinds: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"julia (.jl, .julia)", "singleton method", "immutable", "go (.go)", "python (.py)"} {
		if !strings.Contains(out, want) {
			t.Errorf("kinds output missing %q:\n%s", want, out)
		}
	}
}

func TestRunKindsSingleLanguage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := runKinds([]string{"julia"}, &stdout, &stderr); err != nil {
		t.Fatalf("runKinds: %v", err)
	}
	if strings.Contains(stdout.String(), "python") {
		t.Errorf("single-language output should not list python:\n%s", stdout.String())
	}

	err := runKinds([]string{"cobol"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "unsupported language") {
		t.Fatalf("expected unsupported language error, got %v", err)
	}
}

func TestReorderArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, nil},
		{"flags first unchanged", []string{"-f", "json", "dir"}, []string{"-f", "json", "dir"}},
		{"positional before flags", []string{"dir", "-f", "json"}, []string{"-f", "json", "dir"}},
		{"bool flag after positional", []string{"dir", "-V"}, []string{"-V", "dir"}},
		{"double dash stops parsing", []string{"-f", "json", "--", "-dir"}, []string{"-f", "json", "-dir"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := reorderArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("reorderArgs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterBySize(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "keep.jl", "module K\nend\n")
	writeTestFile(t, dir, "drop.jl", strings.Repeat("x", 200))

	files := []discover.FileEntry{
		{Path: "keep.jl", Language: "julia"},
		{Path: "drop.jl", Language: "julia"},
		{Path: "missing.jl", Language: "julia"}, // unstattable files are kept
	}

	var stderr bytes.Buffer
	kept := filterBySize(dir, files, 100, &stderr)

	if len(kept) != 2 {
		t.Fatalf("expected 2 kept files, got %+v", kept)
	}
	if kept[0].Path != "keep.jl" || kept[1].Path != "missing.jl" {
		t.Errorf("kept = %+v", kept)
	}
	if !strings.Contains(stderr.String(), "drop.jl") {
		t.Errorf("expected warning for drop.jl, got %q", stderr.String())
	}
}
