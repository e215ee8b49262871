package cmd

import (
	"fmt"
	"strings"

	"github.com/snipd/sdk/registry"
)

const ListCommandDescription = "lists the snippets available in a pack"

type ListCommand struct {
	command
}

func (c *ListCommand) Execute(args []string) error {
	reg := registry.New(nil)
	if err := reg.LoadDir(c.Root); err != nil {
		return err
	}

	snippets := reg.List()
	if len(snippets) == 0 {
		warning.Println("no snippets found")
		return nil
	}
	for _, s := range snippets {
		notice.Print(s.Name)
		if len(s.Prefixes) > 0 {
			fmt.Printf("\t%s", strings.Join(s.Prefixes, ", "))
		}
		if s.Description != "" {
			fmt.Printf("\t%s", s.Description)
		}
		fmt.Println()
	}
	return nil
}
