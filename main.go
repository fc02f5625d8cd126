package main

import (
	"os"

	"github.com/datphan/lawgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
