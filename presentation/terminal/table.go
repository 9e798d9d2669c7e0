package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"declarative_elements/domain/entities"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// renderHandles - prints one row per handle
func renderHandles(out io.Writer, handles []entities.Handle) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Tag", "Text", "Attributes"})
	for i, h := range handles {
		pe := entities.Describe(h)
		tag := pe.TagName
		if pe.IsRoot {
			tag = "(root)"
		}
		t.AppendRow(table.Row{i, tag, pe.Text, formatAttributes(pe.Attributes)})
	}
	t.AppendFooter(table.Row{"", "", "", pluralize(len(handles), "element")})
	t.Render()
}

func formatAttributes(attrs map[string]string) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+attrs[name])
	}
	return strings.Join(parts, " ")
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
