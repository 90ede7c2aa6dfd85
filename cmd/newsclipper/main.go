package main

import (
	"os"

	"NewsClipper/cmd/newsclipper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
