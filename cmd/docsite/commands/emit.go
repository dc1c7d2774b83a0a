package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// EmitCmd implements the 'emit' command.
type EmitCmd struct {
	Stdout bool   `help:"Print the generator configuration instead of writing it"`
	Target string `short:"t" help:"Override project.target (astro|hugo)"`
}

func (e *EmitCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	if !e.Stdout {
		svc, cleanup := newBuildService(cfg)
		defer cleanup()
		res, err := svc.Run(ctx, build.BuildRequest{
			Config:  cfg,
			Profile: root.Profile,
			Target:  e.Target,
			Source:  root.source(),
			Options: build.BuildOptions{SkipGenerate: true},
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out(), "Wrote %s%s\n", res.Emit.Path, unchangedSuffix(res.Emit.Changed))
		return nil
	}

	target := cfg.Project.Target
	if e.Target != "" {
		if target, err = config.NormalizeTarget(e.Target); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid target override").Build()
		}
	}
	sc, err := build.Assemble(cfg, root.Profile)
	if err != nil {
		return err
	}
	emitter, ok := emit.Get(string(target))
	if !ok {
		return ferrors.ConfigError(fmt.Sprintf("no emitter for target %q", target)).Build()
	}
	content, err := emitter.Render(sc, emit.Options{OutputDir: cfg.Project.Output, Source: root.source()})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryBuild, "render generator configuration").Build()
	}
	_, err = g.out().Write(content)
	return err
}
