package cmd

import (
	"fmt"

	"github.com/snipd/sdk/registry"
	"github.com/snipd/sdk/snippet"
	"github.com/snipd/sdk/snippet/parser"
	"github.com/snipd/sdk/snippet/transformer"
)

const ExpandCommandDescription = "expands a template or a pack snippet to text"

type ExpandCommand struct {
	Name string            `long:"name" short:"n" description:"expand a snippet from the pack registry instead of a literal template"`
	Vars map[string]string `long:"var" short:"v" description:"variable value as name:value, repeatable"`
	Args struct {
		Template string `positional-arg-name:"template"`
	} `positional-args:"yes"`
	command
}

func (c *ExpandCommand) Execute(args []string) error {
	b := transformer.NewBuilder(transformer.NewEngine())
	resolve := snippet.MapResolver(c.Vars)

	if c.Name != "" {
		reg := registry.New(b)
		if err := reg.LoadDir(c.Root); err != nil {
			return err
		}
		out, err := reg.Expand(c.Name, resolve)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	root := parser.Parse(c.Args.Template)
	if err := transformer.Normalize(root); err != nil {
		return err
	}
	out, err := snippet.Text(root, snippet.RenderOptions{
		Resolve: resolve,
		Replace: func(t *snippet.Transform) (func([]string) []string, error) {
			return b.Build(t)
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
