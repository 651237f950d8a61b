package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/halcyon-dev/srctags/internal/lang"
)

// runKinds implements the `srctags kinds` subcommand, which prints the
// definition kind table for each registered language (or a single one).
func runKinds(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("srctags kinds", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: srctags kinds [language]

Print the definition kinds each language produces, with the single-letter
code used in ctags output. With no argument, all languages are listed.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	var names []string
	if fs.NArg() > 0 {
		name := fs.Arg(0)
		if _, ok := lang.Languages[name]; !ok {
			return fmt.Errorf("unsupported language %q", name)
		}
		names = []string{name}
	} else {
		for name := range lang.Languages {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		l := lang.Languages[name]
		_, _ = fmt.Fprintf(stdout, "%s (%s)\n", l.Name, strings.Join(l.Extensions, ", "))

		table := tablewriter.NewWriter(stdout)
		table.SetHeader([]string{"Code", "Kind", "Plural"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		for _, k := range l.Kinds {
			table.Append([]string{string(k.Letter), k.Name, k.Plural})
		}
		table.Render()
		_, _ = fmt.Fprintln(stdout)
	}
	return nil
}
