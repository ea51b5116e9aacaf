// Package prettyprint renders a Configuration as text for diffing and
// debugging (spec §6: "not part of the semantic contract"). Grounded on
// scionproto/scion's gateway/control/engine.go, which dumps its path
// table through the same borderless tablewriter style used here.
package prettyprint

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/pathmint/pathmint/internal/compiler"
	"github.com/pathmint/pathmint/internal/dto"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	return table
}

// PrintConfiguration renders every router's filter chain, router names in
// sorted order for stable diffs across runs.
func PrintConfiguration(w io.Writer, cfg dto.Configuration) {
	routers := make([]string, 0, len(cfg))
	for name := range cfg {
		routers = append(routers, name)
	}
	sort.Strings(routers)

	for _, name := range routers {
		fmt.Fprintf(w, "# %s\n", name)
		printRouterConfig(w, cfg[name])
		fmt.Fprintln(w)
	}
}

func printRouterConfig(w io.Writer, rc *dto.RouterConfig) {
	table := newTable(w, []string{"PREFIX", "MATCH", "LOCAL-PREF", "EXPORTS", "DENY"})
	rows := make([][]string, 0)
	for _, pdc := range rc.Actions {
		for _, f := range pdc.Device.Filters {
			rows = append(rows, []string{
				fmt.Sprintf("%d", pdc.PrefixIdx),
				f.Match.String(),
				fmt.Sprintf("%d", f.LocalPref),
				formatExports(f.Exports),
				fmt.Sprintf("%t", f.Deny),
			})
		}
	}
	table.AppendBulk(rows)
	table.Render()

	if len(rc.Control.Aggregates) > 0 || len(rc.Control.Tags) > 0 || len(rc.Control.MaxRoutes) > 0 {
		fmt.Fprintf(w, "  aggregates=%d tags=%d maxRoutes=%d\n",
			len(rc.Control.Aggregates), len(rc.Control.Tags), len(rc.Control.MaxRoutes))
	}
}

// PrintStats renders spec §4.G's compression-effectiveness counters, one
// row per prefix, sorted by prefix index for stable output across runs.
func PrintStats(w io.Writer, results []compiler.Result) {
	rows := make([]compiler.Result, len(results))
	copy(rows, results)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Policy.Index < rows[j].Policy.Index })

	table := newTable(w, []string{"PREFIX", "SZRAW", "SZSMART", "RATIO"})
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		ratio := "-"
		if r.Counters.Raw > 0 {
			ratio = fmt.Sprintf("%.2f", float64(r.Counters.Smart)/float64(r.Counters.Raw))
		}
		out = append(out, []string{
			fmt.Sprintf("%d", r.Policy.Index),
			fmt.Sprintf("%d", r.Counters.Raw),
			fmt.Sprintf("%d", r.Counters.Smart),
			ratio,
		})
	}
	table.AppendBulk(out)
	table.Render()
}

func formatExports(exports []dto.Export) string {
	if len(exports) == 0 {
		return "-"
	}
	s := ""
	for i, e := range exports {
		if i > 0 {
			s += "; "
		}
		s += e.Peer
		if len(e.Actions) > 0 {
			s += "("
			for j, a := range e.Actions {
				if j > 0 {
					s += ","
				}
				s += a.String()
			}
			s += ")"
		}
	}
	return s
}
