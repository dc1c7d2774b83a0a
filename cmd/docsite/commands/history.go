package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of builds to show (0 for all)"`
}

func (h *HistoryCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	path := cfg.HistoryPath()
	if path == "" {
		return ferrors.ConfigError("build history is disabled").
			WithHint("remove history.disabled from the declaration").
			Build()
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(g.out(), "No builds recorded")
		return nil
	}

	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "open build history").
			WithContext("path", path).
			Build()
	}
	defer store.Close()

	entries, err := store.Recent(ctx, h.Limit)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "read build history").Build()
	}
	if len(entries) == 0 {
		fmt.Fprintln(g.out(), "No builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tTARGET\tPROFILE\tREVISION\tCHANGED\tDURATION")
	for _, e := range entries {
		rev := e.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		if rev == "" {
			rev = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			e.StartedAt.Local().Format(time.DateTime), e.Status, e.Target, profileLabel(e.Profile),
			rev, e.Changed, e.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}
