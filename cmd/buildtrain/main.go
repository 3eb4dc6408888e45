package main

import (
	"os"

	"github.com/macreleaser/buildtrain/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
