package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing declaration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	fmt.Fprintf(g.out(), "Writing declaration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Fprintln(g.out(), "Initialized; run `docsite validate` once the referenced assets exist")
	return nil
}
