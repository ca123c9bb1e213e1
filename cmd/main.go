package main

import (
	"os"

	"github.com/fyerfyer/logicdiag/pkg/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
