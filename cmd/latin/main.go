package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/zurustar/latin/pkg/cli"
)

//go:embed examples
var embeddedExamples embed.FS

func main() {
	cmd := cli.NewRootCommand(embeddedExamples)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
