package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SkipGenerate bool   `name:"skip-generate" help:"Stop after writing the generator configuration (also DOCSITE_SKIP_GENERATE=1)"`
	Target       string `short:"t" help:"Override project.target (astro|hugo)"`
	MetricsFile  string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the build (overrides metrics.textfile)"`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	metricsFile := b.MetricsFile
	if metricsFile == "" && cfg.Metrics.Textfile != "" {
		metricsFile = cfg.Metrics.Textfile
		if !filepath.IsAbs(metricsFile) {
			metricsFile = filepath.Join(cfg.Dir(), metricsFile)
		}
	}

	svc, cleanup := newBuildService(cfg)
	defer cleanup()
	var recorder *metrics.PrometheusRecorder
	if metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		svc = svc.WithRecorder(recorder)
	}

	res, err := svc.Run(ctx, build.BuildRequest{
		Config:  cfg,
		Profile: root.Profile,
		Target:  b.Target,
		Source:  root.source(),
		Options: build.BuildOptions{SkipGenerate: b.SkipGenerate},
	})

	if recorder != nil {
		if werr := recorder.WriteTextfile(metricsFile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(metricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(g.out(), "Build %s %s (%s, profile %s) in %s\n",
		res.BuildID, res.Status, res.Target, profileLabel(res.Profile), res.Duration.Round(time.Millisecond))
	fmt.Fprintf(g.out(), "  config:    %s%s\n", res.Emit.Path, unchangedSuffix(res.Emit.Changed))
	if res.Generated {
		fmt.Fprintf(g.out(), "  output:    %s\n", filepath.Join(cfg.Project.Root, cfg.Project.Output))
	} else {
		fmt.Fprintln(g.out(), "  generator: skipped")
	}
	return nil
}

func unchangedSuffix(changed bool) string {
	if changed {
		return ""
	}
	return " (unchanged)"
}
