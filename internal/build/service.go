package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/vcs"
)

// BuildService is the canonical interface for executing documentation builds.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded declaration file.
	Config *config.Config

	// Profile selects a profile overlay; empty uses the base declaration.
	Profile string

	// Target overrides project.target when set.
	Target string

	// Source names the declaration file in the emitted header.
	Source string

	Options BuildOptions
}

// BuildOptions provides optional build behavior modifiers.
type BuildOptions struct {
	// SkipGenerate stops after the configuration file is emitted.
	SkipGenerate bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	BuildID string
	Status  BuildStatus
	Profile string
	Target  string

	// Site is the validated, resolved site configuration.
	Site *site.Config

	// Emit describes the written generator configuration.
	Emit *emit.Result

	// Generated reports whether the generator ran.
	Generated bool

	// Revision is the git commit of the project, zero outside a repository.
	Revision vcs.Revision

	// Err holds the failure message for failed or cancelled builds.
	Err string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool { return s == BuildStatusSuccess }
