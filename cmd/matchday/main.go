package main

import (
	"os"

	"github.com/spartaxi/matchday/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
