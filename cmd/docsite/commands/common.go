package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Global carries process-wide state shared by subcommands.
type Global struct {
	// Out receives user-facing command output.
	Out io.Writer
	// LogOut receives log records.
	LogOut io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logOut() io.Writer {
	if g == nil || g.LogOut == nil {
		return os.Stderr
	}
	return g.LogOut
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Declaration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Profile string           `short:"p" help:"Profile to merge over the base declaration" env:"DOCSITE_PROFILE"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the declaration and check referenced assets"`
	Build    BuildCmd    `cmd:"" help:"Emit the generator configuration and run the generator"`
	Emit     EmitCmd     `cmd:"" help:"Write the generator configuration only"`
	Init     InitCmd     `cmd:"" help:"Initialize a new declaration file"`
	Watch    WatchCmd    `cmd:"" help:"Re-validate and re-emit whenever the declaration changes"`
	History  HistoryCmd  `cmd:"" help:"List recent builds"`
}

// AfterApply runs after flag parsing; set up logging until the declaration
// file's logging section is known.
func (c *CLI) AfterApply(g *Global) error {
	slog.SetDefault(config.LoggingConfig{}.NewLogger(g.logOut(), c.Verbose))
	return nil
}

// loadConfig loads the declaration file and switches to its logging settings.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(g.logOut(), c.Verbose))
	slog.Debug("Loaded declaration", logfields.ConfigPath(c.Config), logfields.Target(string(cfg.Project.Target)))
	return cfg, nil
}

// source names the declaration file in generated headers.
func (c *CLI) source() string {
	return filepath.Base(c.Config)
}

func profileLabel(profile string) string {
	if profile == "" {
		return "(base)"
	}
	return profile
}
