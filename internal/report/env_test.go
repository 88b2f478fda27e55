package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regimpact/internal/dataset"
)

const pricesCSV = `DATAFLOW,geo,offer,TIME_PERIOD,OBS_VALUE
ESTAT,DE,FI_MBPS100-200,2016,40
ESTAT,DE,FI_MBPS100-200,2017,42
ESTAT,DE,FI_MBPS100-200,2017,44
ESTAT,IE,FI_MBPS100-200,2016,50
ESTAT,IE,FI_MBPS100-200,2017,55
ESTAT,IE,FI_MBPS30-100,2017,35
ESTAT,CH,FI_MBPS100-200,2017,70
`

const gerdCSV = `Time period,Unit,2015,2016,2017,2018,2019,2020
Germany,%,2,4,6,1,3,5
Ireland,%,1,1,1,10,12,14
Switzerland,%,3,3,3,3,3,3
Austria,%,9,9,9,9,9,9
`

const internetCSV = `Country or Area,Year,Value
Germany,2016,80
Germany,2017,84
Germany,2018,88.2
Germany,2019,92.61
Ireland,2016,50
`

const vpnCSV = `Week,VPN Searches
2023-08-06,20
2023-08-13,25
2023-08-20,:
not a week,30
2023-08-27,40
`

func testOptions() Options {
	return Options{DataDir: "data", GeoDir: "geojson", DPI: 36, MinYear: 2010, CutoffYear: 2018}
}

func readTable(t *testing.T, content string, in Input) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSV(strings.NewReader(content), string(in))
	require.NoError(t, err)
	return table
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	return NewEnv(testOptions(), map[Input]*dataset.Table{
		Prices:        readTable(t, pricesCSV, Prices),
		GERD:          readTable(t, gerdCSV, GERD),
		InternetUsage: readTable(t, internetCSV, InternetUsage),
		VPN:           readTable(t, vpnCSV, VPN),
	}, nil)
}

func TestEnvTable(t *testing.T) {
	env := testEnv(t)

	assert.True(t, env.Has(Prices))
	assert.False(t, env.Has(Traffic))

	_, err := env.Table(Traffic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not loaded")
	assert.Empty(t, env.Regions())
}

func TestEnvLoaders(t *testing.T) {
	env := testEnv(t)

	prices, err := env.prices()
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "Germany", prices[0].Entity)
	v, ok := prices[0].Lookup(2017)
	require.True(t, ok)
	assert.Equal(t, 43.0, v)
	assert.Equal(t, "Ireland", prices[1].Entity)
	assert.Equal(t, 2, prices[1].Len())

	gerd, err := env.oecd(GERD)
	require.NoError(t, err)
	require.Len(t, gerd, 3)
	for i, s := range gerd {
		assert.Equal(t, countries[i], s.Entity)
	}
}

func TestCountriesReturnsCopy(t *testing.T) {
	got := Countries()
	got[0] = "France"
	assert.Equal(t, []string{"Germany", "Ireland", "Switzerland"}, Countries())
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(Prices)), []byte(pricesCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(GERD)), []byte(gerdCSV), 0o644))

	opts := testOptions()
	opts.DataDir = dir
	env, err := LoadEnv(context.Background(), opts, []Input{Prices, GERD}, false)
	require.NoError(t, err)
	assert.True(t, env.Has(Prices))
	assert.True(t, env.Has(GERD))
	assert.Equal(t, 2018, env.Cutoff)

	_, err = LoadEnv(context.Background(), opts, []Input{Prices, Traffic}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), string(Traffic))
}

func TestLoadRegionsMissingDir(t *testing.T) {
	_, err := LoadRegions(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
