package main

import (
	"os"

	"github.com/apertium/apgrep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
