package internal

import (
	"bytes"
	"io"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatusLines(t *testing.T) {
	defer func(o, e io.Writer) { Out, Err = o, e }(Out, Err)
	var out, errs bytes.Buffer
	Out, Err = &out, &errs
	SetColor(false)

	Info("Loading %d datasets", 3)
	Saved("Graph 01", "out/graph_01.png")
	Success("Rendered %d of %d charts", 2, 3)
	Warning("graph 26: no data, skipped")

	assert.Equal(t, "📊 Loading 3 datasets\n📈 Graph 01: out/graph_01.png\n✅ Rendered 2 of 3 charts\n", out.String())
	assert.Equal(t, "⚠️  graph 26: no data, skipped\n", errs.String())
}

func TestSetColorToggles(t *testing.T) {
	defer func(v, d bool) { color.NoColor, detectedNoColor = v, d }(color.NoColor, detectedNoColor)

	SetColor(false)
	assert.True(t, color.NoColor)

	SetColor(true)
	assert.Equal(t, detectedNoColor, color.NoColor)

	detectedNoColor, color.NoColor = false, true
	SetColor(true)
	assert.False(t, color.NoColor)
}
