package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects user-facing messages, which default to stderr.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	if w != nil {
		a.out = w
	}
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return exitCodeFromCategory(classified.Category())
	}
	return 1
}

func exitCodeFromCategory(category ErrorCategory) int {
	switch category {
	case CategoryValidation:
		return 2 // Invalid declaration
	case CategoryNotFound:
		return 3
	case CategoryConfig:
		return 7 // Configuration file error
	case CategoryFileSystem, CategoryBuild, CategoryGenerator:
		return 11 // Build error
	case CategoryRuntime:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return classified.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", classified.Message())
	if cause := classified.Cause(); cause != nil {
		fmt.Fprintf(&b, ": %v", cause)
	}
	if field := classified.Field(); field != "" {
		fmt.Fprintf(&b, "\n  at %s", field)
	}
	if hint := classified.Hint(); hint != "" {
		fmt.Fprintf(&b, "\nHint: %s", hint)
	}
	return b.String()
}

// Report logs err and writes the user-facing message without exiting.
func (a *CLIErrorAdapter) Report(err error) {
	if err == nil {
		return
	}
	a.logError(err)
	fmt.Fprintln(a.out, a.FormatError(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
	if field := classified.Field(); field != "" {
		attrs = append(attrs, slog.String("field", field))
	}
	keys := make([]string, 0, len(classified.Context()))
	for k := range classified.Context() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, classified.Context()[k]))
	}
	a.logger.LogAttrs(context.Background(), slogLevelFromSeverity(classified.Severity()), classified.Message(), attrs...)
}

func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
