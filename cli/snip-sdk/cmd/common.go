package cmd

import "github.com/fatih/color"

var (
	warning = color.New(color.FgRed)
	notice  = color.New(color.FgGreen)
)

// command holds the flags every subcommand shares.
type command struct {
	Root string `long:"root" default:"." description:"snippet pack root directory"`
}
