package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/history"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/observability"
	"git.home.luguber.info/inful/docsite/internal/site"
	"git.home.luguber.info/inful/docsite/internal/vcs"
)

// EnvSkipGenerate disables the generator stage when set to a true value.
const EnvSkipGenerate = "DOCSITE_SKIP_GENERATE"

// Stage names, used for logging and metrics labels.
const (
	StageAssemble = "assemble"
	StageResolve  = "resolve"
	StageEmit     = "emit"
	StageGenerate = "generate"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	generator   Generator
	recorder    metrics.Recorder
	notifier    notify.Notifier
	history     history.Store
	historyKeep int
	revision    func(dir string) (vcs.Revision, error)
	newID       func() string
}

// NewBuildService creates a DefaultBuildService that runs the generator as a
// child process, records no metrics and keeps no history.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		generator: CommandGenerator{},
		recorder:  metrics.NoopRecorder{},
		notifier:  notify.NoopNotifier{},
		revision:  vcs.Head,
		newID:     uuid.NewString,
	}
}

// WithGenerator injects the generator runner.
func (s *DefaultBuildService) WithGenerator(g Generator) *DefaultBuildService {
	if g != nil {
		s.generator = g
	}
	return s
}

// WithRecorder injects a metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithNotifier injects the build completion notifier.
func (s *DefaultBuildService) WithNotifier(n notify.Notifier) *DefaultBuildService {
	if n != nil {
		s.notifier = n
	}
	return s
}

// WithHistory records every finished build in store, pruning to the newest
// keep entries.
func (s *DefaultBuildService) WithHistory(store history.Store, keep int) *DefaultBuildService {
	s.history = store
	s.historyKeep = keep
	return s
}

// Run executes the build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{
		BuildID:   s.newID(),
		Profile:   req.Profile,
		StartTime: start,
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)
	if req.Profile != "" {
		ctx = observability.WithProfile(ctx, req.Profile)
	}

	err := s.run(ctx, req, result)
	s.finish(ctx, result, err)
	return result, err
}

func (s *DefaultBuildService) run(ctx context.Context, req BuildRequest, result *BuildResult) error {
	if req.Config == nil {
		return ferrors.InternalError("build request has no configuration").Build()
	}
	cfg := req.Config

	target := cfg.Project.Target
	if req.Target != "" {
		t, err := config.NormalizeTarget(req.Target)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid target override").
				WithHint("valid targets: astro, hugo").
				Build()
		}
		target = t
	}
	result.Target = string(target)
	ctx = observability.WithTarget(ctx, result.Target)
	result.Revision = s.lookupRevision(ctx, cfg.Project.Root)
	observability.InfoContext(ctx, "Starting build",
		logfields.Path(cfg.Project.Root),
		slog.String("revision", result.Revision.Short()))

	var assembled *site.Config
	if err := s.stage(ctx, StageAssemble, func(context.Context) error {
		decl, err := cfg.Declaration(req.Profile)
		if err != nil {
			return err
		}
		assembled, err = site.Build(decl)
		return err
	}); err != nil {
		return err
	}

	if err := s.stage(ctx, StageResolve, func(context.Context) error {
		resolved, err := cfg.Resolver().Resolve(assembled)
		if err != nil {
			return err
		}
		result.Site = resolved
		return nil
	}); err != nil {
		return err
	}

	opts := emit.Options{OutputDir: cfg.Project.Output, Source: req.Source}
	if err := s.stage(ctx, StageEmit, func(context.Context) error {
		res, err := emit.Emit(result.Site, result.Target, cfg.Project.Root, opts)
		if err != nil {
			return err
		}
		result.Emit = res
		s.recorder.SetEmitChanged(result.Target, res.Changed)
		return nil
	}); err != nil {
		return err
	}

	if skip, reason := skipGenerate(req, cfg); skip {
		observability.InfoContext(observability.WithStage(ctx, StageGenerate), "Skipping generator", slog.String("reason", reason))
		s.recorder.IncStageResult(StageGenerate, metrics.ResultSkipped)
		return nil
	}

	argv := GeneratorCommand(cfg, result.Target, opts)
	return s.stage(ctx, StageGenerate, func(ctx context.Context) error {
		if timeout := cfg.GenerateTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		if err := s.generator.Execute(ctx, cfg.Project.Root, argv); err != nil {
			return err
		}
		result.Generated = true
		return nil
	})
}

// stage runs fn with stage-scoped logging and metrics. A cancelled context
// aborts before fn starts.
func (s *DefaultBuildService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	if err := ctx.Err(); err != nil {
		s.recorder.IncStageResult(name, metrics.ResultCanceled)
		return err
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	s.recorder.ObserveStageDuration(name, elapsed)

	switch {
	case err == nil:
		s.recorder.IncStageResult(name, metrics.ResultSuccess)
		observability.DebugContext(ctx, "Stage complete", logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	case errors.Is(err, context.Canceled):
		s.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		s.recorder.IncStageResult(name, metrics.ResultFatal)
	}
	return err
}

func (s *DefaultBuildService) lookupRevision(ctx context.Context, root string) vcs.Revision {
	if s.revision == nil {
		return vcs.Revision{}
	}
	rev, err := s.revision(root)
	if err != nil {
		if !errors.Is(err, vcs.ErrNotRepository) {
			observability.WarnContext(ctx, "Could not read git revision", logfields.Error(err))
		}
		return vcs.Revision{}
	}
	return rev
}

func (s *DefaultBuildService) finish(ctx context.Context, result *BuildResult, err error) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		result.Err = err.Error()
	}
	defer s.publish(context.WithoutCancel(ctx), result)

	switch {
	case err == nil:
		result.Status = BuildStatusSuccess
		s.recorder.IncBuildOutcome(metrics.BuildSuccess)
		observability.InfoContext(ctx, "Build complete",
			logfields.DurationMS(float64(result.Duration.Milliseconds())),
			slog.Bool("generated", result.Generated))
	case errors.Is(err, context.Canceled):
		result.Status = BuildStatusCancelled
		s.recorder.IncBuildOutcome(metrics.BuildCanceled)
		observability.WarnContext(ctx, "Build cancelled")
	default:
		result.Status = BuildStatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildFailed)
		observability.ErrorContext(ctx, "Build failed", logfields.Error(err))
	}
}

// publish stores the result in the build history and sends the completion
// notification. Failures are logged and never change the build outcome.
func (s *DefaultBuildService) publish(ctx context.Context, result *BuildResult) {
	if s.history != nil {
		if err := s.history.Record(ctx, historyEntry(result)); err != nil {
			observability.WarnContext(ctx, "Failed to record build history", logfields.Error(err))
		} else if _, err := s.history.Prune(ctx, s.historyKeep); err != nil {
			observability.WarnContext(ctx, "Failed to prune build history", logfields.Error(err))
		}
	}
	if err := s.notifier.Notify(ctx, notifyEvent(result)); err != nil {
		observability.WarnContext(ctx, "Failed to send build notification", logfields.Error(err))
	}
}

func historyEntry(r *BuildResult) history.Entry {
	e := history.Entry{
		BuildID:   r.BuildID,
		Status:    string(r.Status),
		Profile:   r.Profile,
		Target:    r.Target,
		Revision:  r.Revision.Commit,
		Generated: r.Generated,
		Error:     r.Err,
		StartedAt: r.StartTime,
		Duration:  r.Duration,
	}
	if r.Emit != nil {
		e.OutputPath = r.Emit.Path
		e.Fingerprint = r.Emit.Fingerprint
		e.Changed = r.Emit.Changed
	}
	return e
}

func notifyEvent(r *BuildResult) notify.Event {
	e := notify.Event{
		BuildID:    r.BuildID,
		Status:     string(r.Status),
		Profile:    r.Profile,
		Target:     r.Target,
		Revision:   r.Revision.Commit,
		Generated:  r.Generated,
		Error:      r.Err,
		DurationMS: r.Duration.Milliseconds(),
		Timestamp:  r.EndTime.UTC(),
	}
	if r.Site != nil {
		e.Title = r.Site.Title()
	}
	if r.Emit != nil {
		e.OutputPath = r.Emit.Path
		e.Changed = r.Emit.Changed
	}
	return e
}

// GeneratorCommand returns the configured generator command, or the target's
// default invocation when none is configured.
func GeneratorCommand(cfg *config.Config, target string, opts emit.Options) []string {
	if len(cfg.Project.Generate.Command) > 0 {
		return append([]string(nil), cfg.Project.Generate.Command...)
	}
	e, ok := emit.Get(target)
	if !ok {
		return nil
	}
	return e.Command(opts)
}

func skipGenerate(req BuildRequest, cfg *config.Config) (bool, string) {
	switch {
	case req.Options.SkipGenerate:
		return true, "requested"
	case cfg.Project.Generate.Skip:
		return true, "project.generate.skip"
	case envTrue(EnvSkipGenerate):
		return true, EnvSkipGenerate
	}
	return false, ""
}

func envTrue(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Assemble validates and resolves the site configuration for profile
// without emitting anything.
func Assemble(cfg *config.Config, profile string) (*site.Config, error) {
	decl, err := cfg.Declaration(profile)
	if err != nil {
		return nil, err
	}
	assembled, err := site.Build(decl)
	if err != nil {
		return nil, err
	}
	return cfg.Resolver().Resolve(assembled)
}
