// Package chart renders the grayscale line and bar charts of the report with
// gonum/plot. Charts are described by plain values (LineChart, BarChart),
// turned into a *plot.Plot with a Theme and written out with Save.
package chart
