package main

import (
	"os"

	"github.com/fleetrent/rentd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
