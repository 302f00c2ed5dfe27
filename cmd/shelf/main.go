package main

import (
	"os"

	"figure-shelf/internal/cli"
	"figure-shelf/internal/graphics"
)

func main() {
	if err := cli.Execute(graphics.View); err != nil {
		os.Exit(1)
	}
}
