package report

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"regimpact/internal/chart"
	"regimpact/internal/dataset"
	"regimpact/internal/metrics"
	"regimpact/internal/timeline"
)

// Google Trends export columns.
const (
	vpnWeekColumn  = "Week"
	vpnValueColumn = "VPN Searches"
)

// vpnWeekLayouts are the accepted week label formats.
var vpnWeekLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// parseWeek parses a week label in any of vpnWeekLayouts.
func parseWeek(s string) (time.Time, bool) {
	for _, layout := range vpnWeekLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// categoricalTicks labels x = start, start+1, ... with labels.
func categoricalTicks(start float64, labels ...string) []plot.Tick {
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: start + float64(i), Label: l}
	}
	return ticks
}

func widened(s chart.Style, width vg.Length) chart.Style {
	s.Width = width
	s.Radius = vg.Points(4)
	return s
}

func notificationsTrend() Job {
	title := "Percentage of Notifications Assessed Within 24 Hours - Trend Over Time"
	periods := []string{"DEC 2016", "MAY 2017", "JAN 2018", "FEB 2019", "JUN 2020", "OCT 2021", "NOV 2022"}
	platforms := []struct {
		name   string
		values []float64
	}{
		{"Facebook", []float64{50, 55, 60, 82, 95, 85, 82}},
		{"YouTube", []float64{63, 50, 90, 82, 90, 82, 96}},
		{"Twitter", []float64{25, 40, 82, 82, 82, 78, 65}},
		{"Instagram", []float64{0, 0, 0, 78, 90, 63, 52}},
		{"Average of companies", []float64{42, 47, 70, 85, 92, 82, 72}},
	}
	return Job{
		ID:     "40",
		Name:   "notifications_24h_trend",
		Title:  title,
		Width:  18 * vg.Inch,
		Height: 10 * vg.Inch,
		Render: func(_ *Env, th chart.Theme) (chart.Drawer, error) {
			lines := make([]chart.Line, len(platforms))
			for i, p := range platforms {
				width := vg.Points(3)
				if i == len(platforms)-1 {
					width = vg.Points(4)
				}
				lines[i] = chart.Line{Label: p.name, XYs: chart.IndexXYs(0, p.values...), Style: widened(th.Cycle(i), width)}
			}
			return plotted(chart.LineChart{
				Title:   title,
				XLabel:  "Monitoring Period",
				YLabel:  "Percentage of notifications assessed within 24 hours (%)",
				Lines:   lines,
				Ticks:   categoricalTicks(0, periods...),
				Markers: []chart.Marker{{X: 2.5, Label: "GDPR\nImplemented", Dashes: chart.Dotted}},
				YMin:    0,
				YMax:    105,
			}, th)
		},
	}
}

func complianceMonitoring() Job {
	title := "Social Media Platform Compliance Monitoring Over Time\n(Facebook, YouTube, Twitter)"
	dates := []string{"Dec 2016", "May 2017", "Jan 2018", "Feb 2019", "Jun 2020", "Oct 2021", "Nov 2022"}
	platforms := []struct {
		name   string
		values []float64
	}{
		{"Facebook", []float64{28.3, 66.5, 79.8, 82.4, 87.6, 70.2, 69.1}},
		{"YouTube", []float64{48.5, 66.0, 75.0, 85.4, 79.7, 58.8, 90.4}},
		{"Twitter", []float64{19.1, 37.4, 45.7, 43.5, 35.9, 49.8, 45.4}},
	}
	return Job{
		ID:    "41",
		Name:  "social_media_compliance_monitoring",
		Title: title,
		Render: func(_ *Env, th chart.Theme) (chart.Drawer, error) {
			lines := make([]chart.Line, len(platforms))
			for i, p := range platforms {
				style := widened(th.Country(countries[i]), vg.Points(2.5))
				lines[i] = chart.Line{Label: p.name, XYs: chart.IndexXYs(1, p.values...), Style: style}
			}
			return plotted(chart.LineChart{
				Title:   title,
				XLabel:  "Monitoring Period",
				YLabel:  "Compliance Rate (%)",
				Lines:   lines,
				Ticks:   categoricalTicks(1, dates...),
				Markers: []chart.Marker{{X: 2.5, Label: "GDPR\n(May 2018)", Dashes: chart.Dashed}},
				YMin:    0,
				YMax:    105,
			}, th)
		},
	}
}

// weeklySearches reads the weekly search interest as Unix-second x values.
// Weeks that do not parse and values that do not coerce are skipped.
func weeklySearches(t *dataset.Table) (plotter.XYs, error) {
	for _, col := range []string{vpnWeekColumn, vpnValueColumn} {
		if _, err := t.Column(col); err != nil {
			return nil, err
		}
	}
	xys := make(plotter.XYs, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		week, ok := parseWeek(row.Get(vpnWeekColumn))
		if !ok {
			continue
		}
		v, ok := row.Float(vpnValueColumn)
		if !ok {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(week.Unix()), Y: v})
	}
	return xys, nil
}

func vpnSearches() Job {
	title := "VPN-Related Search Interest in Texas with House Bill 1181"
	return Job{
		ID:     "42",
		Name:   "vpn_searches_texas",
		Title:  title,
		Inputs: []Input{VPN},
		Render: func(e *Env, th chart.Theme) (chart.Drawer, error) {
			t, err := e.Table(VPN)
			if err != nil {
				return nil, err
			}
			xys, err := weeklySearches(t)
			if err != nil {
				return nil, err
			}
			if len(xys) == 0 {
				return nil, chart.ErrNoData
			}

			values := make([]float64, len(xys))
			for i, xy := range xys {
				values[i] = xy.Y
			}
			mean := metrics.Mean(values)

			style := widened(th.Cycle(0), vg.Points(2.5))
			style.Dashes = chart.Solid
			lc := chart.LineChart{
				Title:  title,
				XLabel: "Date",
				YLabel: "Search Interest (Normalized)",
				Lines:  []chart.Line{{Label: "VPN Searches", XYs: xys, Style: style}},
				RefLines: []chart.RefLine{{
					Y:     mean,
					Label: fmt.Sprintf("Mean (%.1f)", mean),
					Style: chart.Style{Color: chart.Gray(0x66), Width: vg.Points(2), Dashes: chart.Dotted},
				}},
				Markers: []chart.Marker{{
					X:      float64(timeline.HB1181().Date.Unix()),
					Label:  "House Bill 1181\n(Sept 1, 2023)",
					Dashes: chart.Dashed,
				}},
				TimeFormat: "2006-01",
			}
			return plotted(lc, th)
		},
	}
}

func monitoringJobs() []Job {
	return []Job{notificationsTrend(), complianceMonitoring(), vpnSearches()}
}
