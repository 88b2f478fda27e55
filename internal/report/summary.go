package report

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummary prints the pre/post comparison of every indicator as a table.
// Increases are green and decreases red when useColors is set.
func WriteSummary(w io.Writer, results []Metrics, cutoff int, useColors bool) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{
		"Indicator",
		"Country",
		fmt.Sprintf("Before %d", cutoff),
		fmt.Sprintf("From %d", cutoff),
		"Delta",
	})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if useColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	var data [][]string
	for _, m := range results {
		for _, c := range m.Changes {
			delta := c.Delta()
			var deltaStr string
			switch {
			case math.IsNaN(delta):
				deltaStr = "n/a"
			case delta > 0:
				deltaStr = green(fmt.Sprintf("+%.2f ▲", delta))
			case delta < 0:
				deltaStr = red(fmt.Sprintf("%.2f ▼", delta))
			default:
				deltaStr = yellow(fmt.Sprintf("%.2f", 0.0))
			}
			data = append(data, []string{
				m.Indicator.Name,
				c.Entity,
				formatNumber(c.Pre),
				formatNumber(c.Post),
				deltaStr,
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
