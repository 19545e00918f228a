package cliui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table writes aligned columns. Cells must be plain text since escape
// sequences would throw off the alignment; only the trailing status column
// passed to Row is styled.
type Table struct {
	w *tabwriter.Writer
}

func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	fmt.Fprintln(t.w, strings.Join(headers, "\t"))
	return t
}

// Row writes cells followed by a styled status cell. An empty status is
// left out.
func (t *Table) Row(status string, cells ...string) {
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(c, "\n", " ")
	}
	line := strings.Join(cells, "\t")
	if status != "" {
		line += "\t" + status
	}
	fmt.Fprintln(t.w, line)
}

func (t *Table) Flush() error {
	return t.w.Flush()
}

// OnOff renders a green on label or a dim off label.
func OnOff(on bool, onLabel, offLabel string) string {
	if on {
		return NameStyle.Render(onLabel)
	}
	return DimStyle.Render(offLabel)
}
