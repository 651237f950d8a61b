// Package format serializes extracted tags for downstream consumers:
// a sorted ctags file for editors, JSON lines for tooling, and a
// human-readable table.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/halcyon-dev/srctags/internal/model"
)

// Style selects an output encoding.
type Style string

const (
	Ctags Style = "ctags"
	JSON  Style = "json"
	Table Style = "table"
)

// Styles lists the valid styles for flag validation.
var Styles = []Style{Ctags, JSON, Table}

// Valid reports whether s names a known style.
func Valid(s Style) bool {
	for _, known := range Styles {
		if s == known {
			return true
		}
	}
	return false
}

// Write encodes the tags of all files to w in the given style.
func Write(w io.Writer, style Style, files []model.FileInfo) error {
	switch style {
	case JSON:
		return writeJSON(w, files)
	case Table:
		return writeTable(w, files)
	default:
		return writeCtags(w, files)
	}
}

func flatten(files []model.FileInfo) []model.Tag {
	var tags []model.Tag
	for i := range files {
		tags = append(tags, files[i].Tags...)
	}
	return tags
}

// writeCtags emits a tag file in ctags format with line-number search
// commands. Entries are sorted by name so consumers can binary-search.
func writeCtags(w io.Writer, files []model.FileInfo) error {
	tags := flatten(files)
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name != tags[j].Name {
			return tags[i].Name < tags[j].Name
		}
		if tags[i].File != tags[j].File {
			return tags[i].File < tags[j].File
		}
		return tags[i].Line < tags[j].Line
	})

	header := "!_TAG_FILE_FORMAT\t2\t/extended format/\n" +
		"!_TAG_FILE_SORTED\t1\t/0=unsorted, 1=sorted, 2=foldcase/\n" +
		"!_TAG_PROGRAM_NAME\tsrctags\t//\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for _, t := range tags {
		line := fmt.Sprintf("%s\t%s\t%d;\"\t%c", t.Name, t.File, t.Line, t.Kind.Letter)
		if t.Scope != "" {
			line += "\tscope:" + t.Scope
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// jsonTag is the wire form of a tag: one object per line.
type jsonTag struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	File  string `json:"file"`
	Line  int    `json:"line"`
	Scope string `json:"scope,omitempty"`
}

func writeJSON(w io.Writer, files []model.FileInfo) error {
	enc := json.NewEncoder(w)
	for _, t := range flatten(files) {
		jt := jsonTag{
			Name:  t.Name,
			Kind:  t.Kind.Name,
			File:  t.File,
			Line:  t.Line,
			Scope: t.Scope,
		}
		if err := enc.Encode(jt); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, files []model.FileInfo) error {
	tags := flatten(files)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Scope", "File", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, t := range tags {
		table.Append([]string{t.Name, t.Kind.Name, t.Scope, t.File, strconv.Itoa(t.Line)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(tags)), "", "", "", "",
	})

	table.Render()
	return nil
}
