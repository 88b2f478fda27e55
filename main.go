// Command regimpact renders the regulation-impact chart battery.
package main

import (
	"regimpact/cmd"
	"regimpact/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		internal.LogFatal("Error", err)
	}
}
