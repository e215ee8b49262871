package cmd

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/snipd/sdk/snippet/parser"
	"github.com/snipd/sdk/snippet/transformer"
)

const ParseCommandDescription = "parses a template and prints the normalized tree as JSON"

type ParseCommand struct {
	File string `long:"file" short:"f" description:"read the template from a file instead of the argument"`
	Raw  bool   `long:"raw" description:"print the parsed tree without normalizing it"`
	Args struct {
		Template string `positional-arg-name:"template"`
	} `positional-args:"yes"`
	command
}

func (c *ParseCommand) Execute(args []string) error {
	src := c.Args.Template
	if c.File != "" {
		b, err := ioutil.ReadFile(c.File)
		if err != nil {
			return err
		}
		src = string(b)
	}

	root := parser.Parse(src)
	if !c.Raw {
		if err := transformer.Normalize(root); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}
