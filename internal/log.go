// Package internal holds the console status helpers shared by the report and
// the CLI.
package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Status lines go to Out; warnings and fatal errors go to Err.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// detectedNoColor is the terminal and NO_COLOR detection done by fatih/color
// at startup.
var detectedNoColor = color.NoColor

// SetColor turns colored output on or off for every helper. Turning it on
// still respects what was detected at startup.
func SetColor(enabled bool) {
	color.NoColor = !enabled || detectedNoColor
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(Err, "❌ %s: %v\n", red(msg), err)
	os.Exit(1)
}

// Warning logs a warning.
func Warning(msg string) {
	_, _ = fmt.Fprintf(Err, "⚠️  %s\n", yellow(msg))
}

// Info logs a progress line.
func Info(format string, args ...any) {
	_, _ = fmt.Fprintf(Out, "📊 %s\n", fmt.Sprintf(format, args...))
}

// Saved logs a written output file.
func Saved(kind, path string) {
	_, _ = fmt.Fprintf(Out, "📈 %s: %s\n", kind, cyan(path))
}

// Success logs a completion line.
func Success(format string, args ...any) {
	_, _ = fmt.Fprintf(Out, "✅ %s\n", green(fmt.Sprintf(format, args...)))
}
