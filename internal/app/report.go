package app

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/heuristics"
	"github.com/vk/infinitytest/internal/plan"
)

const notFound = "NOT FOUND"

// writePlan renders one row per resolved environment.
func (a *App) writePlan(cfg *config.Configuration, entries []plan.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(a.outW)
	t.SetTitle(fmt.Sprintf("Test framework: %s | App framework: %s", cfg.TestFramework(), cfg.AppFramework()))
	t.AppendHeader(table.Row{"Ruby", "Options", "Binary", "Path"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Binary", Align: text.AlignCenter},
	})

	missing := 0
	for _, e := range entries {
		override := ""
		if e.HasOverride {
			override = e.Override
		}
		switch {
		case e.Err != nil:
			missing++
			t.AppendRow(table.Row{e.Ruby, override, "", e.Err.Error()})
		case !e.Found:
			missing++
			t.AppendRow(table.Row{e.Ruby, override, "", notFound})
		default:
			t.AppendRow(table.Row{e.Ruby, override, e.BinaryKey, e.Binary})
		}
		if cfg.Cucumber() {
			path := e.Cucumber
			if path == "" {
				path = notFound
			}
			t.AppendRow(table.Row{"", "", "cucumber", path})
		}
	}

	t.AppendFooter(table.Row{"", "", "Missing", fmt.Sprintf("%d/%d", missing, len(entries))})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// writeHeuristics renders the declared rules in declaration order.
func (a *App) writeHeuristics(rules []heuristics.Rule) {
	if len(rules) == 0 {
		fmt.Fprintln(a.outW, "No heuristics declared.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.outW)
	t.AppendHeader(table.Row{"#", "Pattern", "Run"})
	for i, r := range rules {
		t.AppendRow(table.Row{i + 1, r.Pattern.String(), r.Run})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
