package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Generator runs the external static site generator. Swapping it lets tests
// and emit-only paths avoid the real binary.
type Generator interface {
	Execute(ctx context.Context, dir string, argv []string) error
}

// CommandGenerator executes argv as a child process inside dir.
type CommandGenerator struct{}

// maxOutputTail bounds the generator output kept in error context.
const maxOutputTail = 4096

// waitDelay bounds how long output pipes held open by grandchildren may
// delay return after the generator is killed.
const waitDelay = 5 * time.Second

// Execute runs argv in dir, capturing output for the error context.
func (CommandGenerator) Execute(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return ferrors.ConfigError("generator command is empty").Build()
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return ferrors.GeneratorError(fmt.Sprintf("generator binary %q not found", argv[0])).
			WithCause(err).
			WithHint("install the generator or set project.generate.command").
			Build()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking generator", logfields.Path(dir), slog.String("command", strings.Join(argv, " ")))

	err := cmd.Run()

	if out := stdout.String(); out != "" {
		slog.Debug("generator stdout", "output", out)
	}
	if errOut := stderr.String(); errOut != "" {
		slog.Warn("generator stderr", "error_output", errOut)
	}
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		msg := "generator cancelled"
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			msg = "generator timed out"
		}
		return ferrors.GeneratorError(msg).
			WithCause(ctxErr).
			WithContext("command", strings.Join(argv, " ")).
			Build()
	}

	b := ferrors.GeneratorError("generator command failed").
		WithCause(err).
		WithContext("command", strings.Join(argv, " "))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		b = b.WithContext("exit_code", exitErr.ExitCode())
	}
	if output := outputTail(stdout.String(), stderr.String()); output != "" {
		b = b.WithContext("output", output)
	}
	return b.Build()
}

// outputTail joins both streams, since generators report errors on either,
// and keeps the last maxOutputTail bytes.
func outputTail(stdout, stderr string) string {
	output := strings.TrimSpace(strings.Join([]string{strings.TrimSpace(stdout), strings.TrimSpace(stderr)}, "\n"))
	if len(output) > maxOutputTail {
		output = output[len(output)-maxOutputTail:]
	}
	return output
}

// NoopGenerator performs no generation; useful in tests or for emit-only runs.
type NoopGenerator struct{}

// Execute logs the command it would have run.
func (NoopGenerator) Execute(_ context.Context, dir string, argv []string) error {
	slog.Debug("NoopGenerator skipping generation", logfields.Path(dir), slog.String("command", strings.Join(argv, " ")))
	return nil
}
