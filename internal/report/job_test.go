package report

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regimpact/internal/chart"
	"regimpact/internal/dataset"
)

func TestCatalog(t *testing.T) {
	jobs := Catalog()
	require.Len(t, jobs, 51)

	ids := make([]string, len(jobs))
	seen := make(map[string]bool)
	files := make(map[string]bool)
	for i, j := range jobs {
		ids[i] = j.ID
		assert.False(t, seen[j.ID], "duplicate id %s", j.ID)
		seen[j.ID] = true
		assert.False(t, files[j.FileName()], "duplicate file %s", j.FileName())
		files[j.FileName()] = true
		assert.NotNil(t, j.Render, j.ID)
		assert.NotEmpty(t, j.Title, j.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Equal(t, "01", ids[0])
	assert.Equal(t, "42", ids[len(ids)-1])
}

func TestFileName(t *testing.T) {
	j := Job{ID: "20a", Name: "rd_window_gdpr"}
	assert.Equal(t, "graph_20a_rd_window_gdpr.png", j.FileName())
}

func TestJobTheme(t *testing.T) {
	th := chart.DefaultTheme(36)
	assert.Equal(t, th, Job{}.Theme(th))

	resized := Job{Width: 100, Height: 50}.Theme(th)
	assert.Equal(t, 100.0, float64(resized.Width))
	assert.Equal(t, 50.0, float64(resized.Height))
}

func TestPlotted(t *testing.T) {
	th := chart.DefaultTheme(36)

	d, err := plotted(chart.LineChart{}, th)
	assert.ErrorIs(t, err, chart.ErrNoData)
	assert.Nil(t, d)

	d, err = plotted(chart.BarChart{
		Categories: []string{"Germany"},
		Groups:     []chart.Bars{{Label: "2018", Values: []float64{1}}},
	}, th)
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestSelect(t *testing.T) {
	jobs := Catalog()

	all, err := Select(jobs, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(jobs))

	picked, err := Select(jobs, []string{"20", "05", " 16b "})
	require.NoError(t, err)
	var ids []string
	for _, j := range picked {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"05", "16b", "20a", "20b", "20c", "20d"}, ids)

	_, err = Select(jobs, []string{"99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"99"`)
}

func TestInputs(t *testing.T) {
	jobs, err := Select(Catalog(), []string{"01", "16", "26", "29"})
	require.NoError(t, err)

	inputs, maps := Inputs(jobs)
	assert.True(t, maps)
	assert.Equal(t, []Input{InternetUsage, Prices}, inputs)

	inputs, maps = Inputs(jobs[:1])
	assert.False(t, maps)
	assert.Equal(t, []Input{Prices}, inputs)
}

func TestRunner(t *testing.T) {
	env := testEnv(t)
	jobs, err := Select(Catalog(), []string{"01", "16", "05"})
	require.NoError(t, err)
	jobs = append(jobs, Job{
		ID:   "99",
		Name: "empty",
		Render: func(*Env, chart.Theme) (chart.Drawer, error) {
			return nil, chart.ErrNoData
		},
	})

	out := t.TempDir()
	results, err := Runner{Env: env, OutDir: out, Workers: 2}.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	assert.Equal(t, 4, Rendered(results))

	for _, res := range results[:4] {
		assert.False(t, res.Skipped, res.Job.ID)
		assert.Equal(t, filepath.Join(out, res.Job.FileName()), res.Path)
		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(data[:4]))
	}
	assert.True(t, results[4].Skipped)
	assert.Empty(t, results[4].Path)
}

func TestRunnerFailure(t *testing.T) {
	env := testEnv(t)
	jobs, err := Select(Catalog(), []string{"15"})
	require.NoError(t, err)

	_, err = Runner{Env: env, OutDir: t.TempDir()}.Run(context.Background(), jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph 15")
	assert.Contains(t, err.Error(), "not loaded")
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs, err := Select(Catalog(), []string{"29"})
	require.NoError(t, err)
	_, err = Runner{Env: testEnv(t), OutDir: t.TempDir()}.Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticJobsRender(t *testing.T) {
	env := testEnv(t)
	jobs := append(surveyJobs(), notificationsTrend(), complianceMonitoring())
	for _, j := range jobs {
		d, err := j.Render(env, j.Theme(env.Theme))
		require.NoError(t, err, j.ID)
		assert.NotNil(t, d, j.ID)
	}
}

func TestDataJobsRender(t *testing.T) {
	env := testEnv(t)
	jobs, err := Select(Catalog(), []string{"02", "05", "20", "24a", "24c", "42"})
	require.NoError(t, err)
	for _, j := range jobs {
		d, err := j.Render(env, j.Theme(env.Theme))
		require.NoError(t, err, j.ID)
		assert.NotNil(t, d, j.ID)
	}
}

func TestMapJobWithoutRegions(t *testing.T) {
	jobs, err := Select(Catalog(), []string{"26"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	_, err = jobs[0].Render(testEnv(t), chart.DefaultTheme(36))
	assert.ErrorIs(t, err, chart.ErrNoData)
}

func TestPricesSkippedWithoutCountries(t *testing.T) {
	env := NewEnv(testOptions(), map[Input]*dataset.Table{
		Prices: readTable(t, "DATAFLOW,geo,offer,TIME_PERIOD,OBS_VALUE\nESTAT,CH,FI_MBPS100-200,2017,70\n", Prices),
	}, nil)
	jobs, err := Select(Catalog(), []string{"01"})
	require.NoError(t, err)

	results, err := Runner{Env: env, OutDir: t.TempDir()}.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.True(t, results[0].Skipped)
	assert.Zero(t, Rendered(results))
}
