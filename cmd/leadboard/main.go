package main

import (
	"os"

	"github.com/thenoetrevino/leadboard/internal/cli"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitCodeOf(err))
	}
}
