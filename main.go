package main

import (
	"os"

	"github.com/liftcore/liftcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
