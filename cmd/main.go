package main

import (
	"os"

	"humorpedia-web/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
