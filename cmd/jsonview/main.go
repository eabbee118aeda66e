package main

import (
	"os"

	"github.com/baaaaaaaka/jsonview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
