package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	AllProfiles bool `name:"all-profiles" help:"Validate the base declaration and every profile"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	profiles := []string{root.Profile}
	if v.AllProfiles {
		profiles = append([]string{""}, cfg.ProfileNames()...)
	}

	var firstErr error
	for _, profile := range profiles {
		sc, err := build.Assemble(cfg, profile)
		if err != nil {
			fmt.Fprintf(g.out(), "Profile %s: invalid\n", profileLabel(profile))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		printSummary(g.out(), cfg, profile, sc)
	}
	return firstErr
}

func printSummary(w io.Writer, cfg *config.Config, profile string, sc *site.Config) {
	plugins := sc.Plugins()
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Name)
	}
	fmt.Fprintf(w, "Profile %s: valid\n", profileLabel(profile))
	fmt.Fprintf(w, "  title:        %s\n", sc.Title())
	fmt.Fprintf(w, "  title source: %s\n", sc.TitleSource())
	fmt.Fprintf(w, "  target:       %s\n", cfg.Project.Target)
	fmt.Fprintf(w, "  plugins:      %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "  assets:       %d resolved\n", len(sc.AssetPaths()))
}
