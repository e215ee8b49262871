package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/snipd/sdk/cli/snip-sdk/cmd"
)

var version string
var build string

func main() {
	parser := flags.NewNamedParser("snip-sdk", flags.Default)
	parser.AddCommand("parse", cmd.ParseCommandDescription, "", &cmd.ParseCommand{})
	parser.AddCommand("expand", cmd.ExpandCommandDescription, "", &cmd.ExpandCommand{})
	parser.AddCommand("list", cmd.ListCommandDescription, "", &cmd.ListCommand{})
	parser.AddCommand("manifest", cmd.ManifestCommandDescription, "", &cmd.ManifestCommand{})

	if _, err := parser.Parse(); err != nil {
		if _, ok := err.(*flags.Error); ok {
			parser.WriteHelp(os.Stdout)
			fmt.Printf("\nBuild information\n  commit: %s\n  date:%s\n", version, build)
		}

		os.Exit(1)
	}
}
