package model

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Summary renders a layer table with output shapes and parameter counts.
func Summary(m Model) string {
	var sb strings.Builder

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "layer\toutput\tparams\n")
	fmt.Fprintf(tw, "input\t%v\t0\n", m.InputShape())

	total := 0
	for _, l := range m.Layers() {
		fmt.Fprintf(tw, "%s\t%v\t%d\n", l.Name, l.OutputShape, l.Params)
		total += l.Params
	}

	_ = tw.Flush()
	fmt.Fprintf(&sb, "total params: %d\n", total)

	return sb.String()
}

// ParamCount sums the parameters of every layer.
func ParamCount(m Model) int {
	total := 0
	for _, l := range m.Layers() {
		total += l.Params
	}

	return total
}
