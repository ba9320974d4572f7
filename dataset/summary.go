package dataset

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// ColumnSummary describes one column.
type ColumnSummary struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Missing int    `yaml:"missing"`
}

// Summary returns the name, type and missing-cell count of every column.
func (d *Dataset) Summary() []ColumnSummary {
	names := d.frame.Names()
	out := make([]ColumnSummary, 0, len(names))
	for _, name := range names {
		col := d.frame.Col(name)
		missing := 0
		for _, na := range col.IsNaN() {
			if na {
				missing++
			}
		}
		out = append(out, ColumnSummary{
			Name:    name,
			Kind:    string(col.Type()),
			Missing: missing,
		})
	}
	return out
}

// WriteSummary prints Summary as an aligned table.
func (d *Dataset) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s: %d rows, %d columns\n", d.name, d.Nrow(), d.Ncol())
	fmt.Fprintln(tw, "COLUMN\tTYPE\tMISSING")
	for _, c := range d.Summary() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Name, c.Kind, c.Missing)
	}
	return tw.Flush()
}
