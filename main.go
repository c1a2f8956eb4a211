package main

import (
	"os"

	"github.com/commitgpt/commitgpt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
