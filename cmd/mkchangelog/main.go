package main

import (
	"os"

	"github.com/mkchangelog/mkchangelog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
