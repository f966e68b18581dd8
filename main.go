package main

import (
	"os"

	"github.com/maxkimambo/spin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// The error was already reported, exit with non-zero status
		os.Exit(1)
	}
}
