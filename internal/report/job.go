package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"regimpact/internal/chart"
)

// RenderFunc draws one chart from the environment with the given theme.
type RenderFunc func(e *Env, th chart.Theme) (chart.Drawer, error)

// Job is one entry of the chart battery.
type Job struct {
	// ID is the chart number with its optional letter suffix, e.g. "20a".
	ID    string
	Name  string
	Title string

	Inputs []Input
	Maps   bool

	// Width and Height override the theme canvas when positive.
	Width, Height vg.Length

	Render RenderFunc
}

// FileName is the PNG file the job writes.
func (j Job) FileName() string {
	return "graph_" + j.ID + "_" + j.Name + ".png"
}

// Theme returns th resized for the job.
func (j Job) Theme(th chart.Theme) chart.Theme {
	if j.Width > 0 && j.Height > 0 {
		return th.WithSize(j.Width, j.Height)
	}
	return th
}

// Select keeps the jobs named by only, in catalog order. An id matches
// exactly or by its numeric prefix, so "20" selects 20a to 20d. An empty
// list keeps every job; an id matching nothing is an error.
func Select(jobs []Job, only []string) ([]Job, error) {
	if len(only) == 0 {
		return jobs, nil
	}
	picked := make(map[int]bool)
	for _, id := range only {
		id = strings.TrimSpace(id)
		matched := false
		for i, j := range jobs {
			if j.ID == id || numericID(j.ID) == id {
				picked[i] = true
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown chart %q", id)
		}
	}

	out := make([]Job, 0, len(picked))
	for i, j := range jobs {
		if picked[i] {
			out = append(out, j)
		}
	}
	return out, nil
}

func numericID(id string) string {
	return strings.TrimRight(id, "abcdefghijklmnopqrstuvwxyz")
}

// plotBuilder is a chart description that builds a *plot.Plot.
type plotBuilder interface {
	Plot(th chart.Theme) (*plot.Plot, error)
}

// plotted builds c, keeping a nil Drawer on error.
func plotted(c plotBuilder, th chart.Theme) (chart.Drawer, error) {
	p, err := c.Plot(th)
	if err != nil {
		return nil, err
	}
	return p, nil
}
