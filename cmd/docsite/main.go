// Command docsite turns a declarative site configuration into the native
// configuration of a static documentation site generator.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Exit)
	cancel()
	os.Exit(code)
}

// run parses args, executes the selected command and returns the exit code.
// exit is called by kong for --help and --version.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) int {
	var cli commands.CLI
	global := &commands.Global{Out: stdout, LogOut: stderr}

	parser, err := kong.New(&cli,
		kong.Name("docsite"),
		kong.Description("Validate a documentation site declaration and emit generator configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Bind(global),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 10
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	if err := kctx.Run(global, &cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr)
		adapter.Report(err)
		return adapter.ExitCodeFor(err)
	}
	return 0
}
