package main

import (
	"os"

	"github.com/kwalter/shipit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
