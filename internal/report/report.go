// Package report prints the outcome of dependency analysis.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Summary collects what the analysis decided about a package
type Summary struct {
	Name    string
	Version string

	// KnowledgeBase names where the library mappings came from
	KnowledgeBase string

	Resolved   []string
	Missing    []string
	Dropped    []string
	Unresolved []string
}

// Render formats the summary as text tables
func Render(s Summary) string {
	var buffer bytes.Buffer

	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Count"})
	t.AppendRow(table.Row{"Resolved packages", len(s.Resolved)})
	t.AppendRow(table.Row{"Missing libraries", len(s.Missing)})
	t.AppendRow(table.Row{"Dropped by conflicts", len(s.Dropped)})
	t.AppendRow(table.Row{"Unresolved Depends", len(s.Unresolved)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Knowledge base", s.KnowledgeBase})

	fmt.Fprintf(&buffer, "%s %s\n", s.Name, s.Version)
	buffer.WriteString(t.Render())
	buffer.WriteString("\n")

	section(&buffer, "Resolved packages", "Package", s.Resolved)
	section(&buffer, "Missing libraries", "Library", s.Missing)
	section(&buffer, "Dropped by conflict rules", "Package", s.Dropped)
	section(&buffer, "Unresolved Depends entries", "Entry", s.Unresolved)

	return buffer.String()
}

// Print writes the rendered summary to w
func Print(w io.Writer, s Summary) error {
	_, err := io.WriteString(w, Render(s))
	return err
}

func section(buffer *bytes.Buffer, title, column string, items []string) {
	if len(items) == 0 {
		return
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", column})
	for i, item := range items {
		t.AppendRow(table.Row{i + 1, item})
	}

	buffer.WriteString("\n" + title + "\n")
	buffer.WriteString(t.Render())
	buffer.WriteString("\n")
}
