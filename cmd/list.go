package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"regimpact/internal"
	"regimpact/internal/report"
	"regimpact/internal/timeline"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the charts of the battery and the files they read",
	Run: func(_ *cobra.Command, _ []string) {
		table := tablewriter.NewWriter(os.Stdout)
		defer func() { _ = table.Close() }()

		table.Header([]string{"ID", "File", "Title", "Inputs"})
		var data [][]string
		for _, j := range report.Catalog() {
			inputs := make([]string, 0, len(j.Inputs)+1)
			for _, in := range j.Inputs {
				inputs = append(inputs, string(in))
			}
			if j.Maps {
				inputs = append(inputs, "geojson")
			}
			data = append(data, []string{j.ID, j.FileName(), j.Title, strings.Join(inputs, "\n")})
		}
		if err := table.Bulk(data); err != nil {
			internal.LogFatal("Cannot list charts", err)
		}
		if err := table.Render(); err != nil {
			internal.LogFatal("Cannot list charts", err)
		}
	},
}

var milestonesCmd = &cobra.Command{
	Use:   "milestones",
	Short: "Show the regulation timeline drawn on the charts",
	Run: func(_ *cobra.Command, _ []string) {
		tl := timeline.Default()

		table := tablewriter.NewWriter(os.Stdout)
		defer func() { _ = table.Close() }()

		table.Header([]string{"Regulation", "Date", "Axis Position"})
		var data [][]string
		for _, m := range tl.Milestones() {
			data = append(data, []string{m.Label(), m.Date.Format("2006-01-02"), fmt.Sprintf("%.3f", m.X())})
		}
		iv := tl.Interval()
		start, end := iv.Span()
		data = append(data, []string{
			iv.Name,
			iv.Start.Format("2006-01-02") + " to " + iv.End.Format("2006-01-02"),
			fmt.Sprintf("%.3f to %.3f", start, end),
		})
		if err := table.Bulk(data); err != nil {
			internal.LogFatal("Cannot list milestones", err)
		}
		if err := table.Render(); err != nil {
			internal.LogFatal("Cannot list milestones", err)
		}
	},
}
