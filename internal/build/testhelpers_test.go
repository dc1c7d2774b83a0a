package build

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/vcs"
)

const projectConfig = `version: "1.0"
project:
  target: astro
integrations:
  - name: starlight
    options:
      title: DZG Data Science Orchestrator
      favicon: /favicon-dzg.png
      customCss: [./src/tailwind.css]
      social: { email: "mailto:markus.brechtel@uk-koeln.de" }
      components: { SiteTitle: ./src/components/SiteTitle.astro }
  - name: tailwind
    options: { applyBaseStyles: false }
profiles:
  public:
    starlight:
      title: Data Science Orchestrator
      logo: { src: ./src/assets/DZG_icon.svg }
      components: { SiteTitle: "" }
`

var projectFiles = []string{
	"public/favicon-dzg.png",
	"src/tailwind.css",
	"src/components/SiteTitle.astro",
	"src/assets/DZG_icon.svg",
}

// writeProject lays out a generator project and returns its loaded config.
func writeProject(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	for _, f := range projectFiles {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	cfgPath := filepath.Join(root, "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(projectConfig), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	return cfg
}

type generatorCall struct {
	dir  string
	argv []string
}

type fakeGenerator struct {
	calls []generatorCall
	err   error
}

func (f *fakeGenerator) Execute(_ context.Context, dir string, argv []string) error {
	f.calls = append(f.calls, generatorCall{dir: dir, argv: argv})
	return f.err
}

type testRecorder struct {
	mu           sync.Mutex
	stageResults map[string]metrics.ResultLabel
	outcomes     []metrics.BuildOutcomeLabel
	emitChanged  map[string]bool
	builds       int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageResults: map[string]metrics.ResultLabel{}, emitChanged: map[string]bool{}}
}

func (r *testRecorder) ObserveStageDuration(string, time.Duration) {}
func (r *testRecorder) ObserveBuildDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
}
func (r *testRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stageResults[stage] = result
}
func (r *testRecorder) IncBuildOutcome(outcome metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}
func (r *testRecorder) SetEmitChanged(target string, changed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitChanged[target] = changed
}

func newTestService(gen Generator, rec metrics.Recorder) *DefaultBuildService {
	s := NewBuildService().WithGenerator(gen).WithRecorder(rec)
	s.newID = func() string { return "build-1" }
	s.revision = func(string) (vcs.Revision, error) {
		return vcs.Revision{Commit: "0123456789abcdef0123456789abcdef01234567", Branch: "main"}, nil
	}
	return s
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, e notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}
