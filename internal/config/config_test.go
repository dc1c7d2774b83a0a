package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const orchestratorConfig = `version: "1.0"
project:
  root: ./website
integrations:
  - name: starlight
    options:
      title: DZG Data Science Orchestrator
      components:
        SiteTitle: ./src/components/SiteTitle.astro
      social:
        email: mailto:markus.brechtel@uk-koeln.de
      favicon: /favicon-dzg.png
      customCss: [./src/tailwind.css]
  - name: tailwind
    options:
      applyBaseStyles: false
profiles:
  public:
    starlight:
      title: Data Science Orchestrator
      logo:
        src: ./src/assets/DZG_icon.svg
      components:
        SiteTitle: ""
  combined:
    starlight:
      logo:
        src: ./src/assets/DZG_icon.svg
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OrchestratorDeclaration(t *testing.T) {
	path := writeConfig(t, orchestratorConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TargetAstro, cfg.Project.Target)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "website"), cfg.Project.Root)
	assert.Equal(t, "dist", cfg.Project.Output)
	assert.Equal(t, "public", cfg.Project.PublicDir)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)

	decl, err := cfg.Declaration("")
	require.NoError(t, err)
	assert.Equal(t, "DZG Data Science Orchestrator", decl.Title)
	assert.Equal(t, "./src/components/SiteTitle.astro", decl.Components[site.SlotSiteTitle])
	assert.Equal(t, []string{"./src/tailwind.css"}, decl.CustomCSS)
	require.NotNil(t, decl.ApplyBaseStyles)
	assert.False(t, *decl.ApplyBaseStyles)
	assert.Nil(t, decl.Logo)
}

func TestLoad_ProfilesSelectVariant(t *testing.T) {
	cfg, err := Load(writeConfig(t, orchestratorConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"combined", "public"}, cfg.ProfileNames())

	public, err := cfg.Declaration("public")
	require.NoError(t, err)
	built, err := site.Build(public)
	require.NoError(t, err)
	assert.Equal(t, "Data Science Orchestrator", built.Title())
	assert.Equal(t, site.TitleFromLogo, built.TitleSource())
	assert.Equal(t, "/favicon-dzg.png", built.Favicon())

	combined, err := cfg.Declaration("combined")
	require.NoError(t, err)
	_, err = site.Build(combined)
	assert.ErrorIs(t, err, site.ErrConflictingTitleRender)

	_, err = cfg.Declaration("staging")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoad_EnvFileExpansion(t *testing.T) {
	path := writeConfig(t, strings.Replace(orchestratorConfig,
		"mailto:markus.brechtel@uk-koeln.de", "mailto:${DOCSITE_TEST_CONTACT}", 1))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"),
		[]byte("DOCSITE_TEST_CONTACT=docs@example.com\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("DOCSITE_TEST_CONTACT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mailto:docs@example.com", cfg.Site.Social["email"])
}

func TestLoad_ExistingEnvWins(t *testing.T) {
	t.Setenv("DOCSITE_TEST_TITLE", "From Process")
	path := writeConfig(t, strings.Replace(orchestratorConfig,
		"title: DZG Data Science Orchestrator", "title: ${DOCSITE_TEST_TITLE}", 1))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"),
		[]byte("DOCSITE_TEST_TITLE=From File\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From Process", cfg.Site.Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"wrong version", "version: \"2.0\"\n", "unsupported configuration version"},
		{"unknown top-level key", "version: \"1.0\"\nsite: {}\n", "parse configuration"},
		{"unknown integration", "version: \"1.0\"\nintegrations:\n  - name: mdx\n", "unknown integration \"mdx\""},
		{"duplicate integration", "version: \"1.0\"\nintegrations:\n  - name: tailwind\n  - name: tailwind\n", "declared more than once"},
		{"bad target", "version: \"1.0\"\nproject:\n  target: gatsby\n", "normalize project.target"},
		{"bad option type", "version: \"1.0\"\nintegrations:\n  - name: starlight\n    options:\n      customCss: 3\n", "decode starlight options"},
		{"slot spelled twice", "version: \"1.0\"\nintegrations:\n  - name: starlight\n    options:\n      components:\n        SiteTitle: ./a.astro\n        site-title: ./b.astro\n", "\"SiteTitle\" and \"site-title\" name the same key"},
		{"platform spelled twice", "version: \"1.0\"\nintegrations:\n  - name: starlight\n    options:\n      social:\n        Email: mailto:a@b.example\n        email: mailto:c@d.example\n", "name the same key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "category: %s", ferrors.GetCategory(err))
		})
	}
}

func TestParse_StylingIntegrationFirst(t *testing.T) {
	content := "version: \"1.0\"\n" +
		"integrations:\n" +
		"  - name: tailwind\n" +
		"    options: { applyBaseStyles: false }\n" +
		"  - name: starlight\n" +
		"    options: { title: Docs }\n"

	cfg, _, err := Parse([]byte(content))
	require.NoError(t, err)
	require.NotNil(t, cfg.Site.ApplyBaseStyles)
	assert.False(t, *cfg.Site.ApplyBaseStyles)
	assert.Equal(t, "Docs", cfg.Site.Title)
}

func TestParse_NormalizationWarnings(t *testing.T) {
	content := "version: \"1.0\"\n" +
		"project:\n  target: Starlight\n" +
		"logging:\n  level: WARNING\n" +
		"integrations:\n" +
		"  - name: starlight\n" +
		"    options:\n" +
		"      title: \"  Café Docs  \"\n" +
		"      components:\n        site-title: ./src/components/SiteTitle.astro\n" +
		"      social:\n        Email: mailto:a@b.example\n" +
		"      applyBaseStyles: true\n"

	cfg, warnings, err := Parse([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, TargetAstro, cfg.Project.Target)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, "Café Docs", cfg.Site.Title)
	assert.Equal(t, "./src/components/SiteTitle.astro", cfg.Site.Components["SiteTitle"])
	assert.Equal(t, "mailto:a@b.example", cfg.Site.Social["email"])
	assert.Nil(t, cfg.Site.ApplyBaseStyles, "theme options must not set the styling flag")

	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "unknown option \"applyBaseStyles\"")
	assert.Contains(t, joined, "'site-title' to 'SiteTitle'")
	assert.Contains(t, joined, "'Email' to 'email'")
	assert.Contains(t, joined, "project.target")
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg := &Config{Version: CurrentVersion}
		require.NoError(t, applyDefaults(cfg))
		return cfg
	}

	require.NoError(t, ValidateConfig(base()))

	cfg := base()
	cfg.Watch.Debounce = "soon"
	assert.ErrorContains(t, ValidateConfig(cfg), "invalid watch.debounce")

	cfg = base()
	cfg.Project.Generate.Timeout = "-1s"
	assert.ErrorContains(t, ValidateConfig(cfg), "must not be negative")

	cfg = base()
	cfg.Project.Generate.Command = []string{"npx", " "}
	assert.ErrorContains(t, ValidateConfig(cfg), "command[1] is empty")

	cfg = base()
	cfg.Profiles = map[string]map[string]yaml.Node{"x": {"mdx": {}}}
	assert.ErrorContains(t, ValidateConfig(cfg), "unknown integration \"mdx\"")

	cfg = base()
	cfg.Watch.Rescan = "hourly"
	assert.ErrorContains(t, ValidateConfig(cfg), "invalid watch.rescan")

	cfg = base()
	cfg.History.Keep = -1
	assert.ErrorContains(t, ValidateConfig(cfg), "history.keep")

	cfg = base()
	cfg.Notify.NATS = NATSConfig{URL: "not a url", Subject: "docsite.builds"}
	assert.ErrorContains(t, ValidateConfig(cfg), "invalid notify.nats.url")

	cfg = base()
	cfg.Notify.NATS = NATSConfig{URL: "nats://127.0.0.1:4222", Subject: "docsite.>"}
	assert.ErrorContains(t, ValidateConfig(cfg), "invalid notify.nats.subject")
}

func TestApplyDefaults_HistoryAndNotify(t *testing.T) {
	cfg := &Config{Version: CurrentVersion, Project: ProjectConfig{Root: "/srv/site"}}
	require.NoError(t, applyDefaults(cfg))
	assert.Equal(t, "/srv/site/.docsite/history.db", cfg.HistoryPath())
	assert.Equal(t, 100, cfg.History.Keep)
	assert.Empty(t, cfg.Notify.NATS.Subject, "no defaults without a URL")
	assert.Zero(t, cfg.WatchRescan())

	cfg = &Config{
		Version: CurrentVersion,
		Project: ProjectConfig{Root: "/srv/site"},
		History: HistoryConfig{Disabled: true},
		Notify:  NotifyConfig{NATS: NATSConfig{URL: "nats://127.0.0.1:4222"}},
		Watch:   WatchConfig{Rescan: "10m"},
	}
	require.NoError(t, applyDefaults(cfg))
	assert.Empty(t, cfg.HistoryPath())
	assert.Equal(t, "docsite.builds", cfg.Notify.NATS.Subject)
	assert.Equal(t, int64(5000), cfg.NATSTimeout().Milliseconds())
	assert.Equal(t, int64(10), int64(cfg.WatchRescan().Minutes()))
	require.NoError(t, ValidateConfig(cfg))
}

func TestApplyDefaults_HugoLayout(t *testing.T) {
	cfg := &Config{Version: CurrentVersion, Project: ProjectConfig{Target: TargetHugo, Root: "/srv/site"}}
	require.NoError(t, applyDefaults(cfg))
	assert.Equal(t, "/srv/site", cfg.Project.Root)
	assert.Equal(t, "static", cfg.Project.PublicDir)
	assert.Equal(t, "content", cfg.Project.ContentDir)
	assert.Equal(t, "public", cfg.Project.Output)
	assert.Equal(t, "500ms", cfg.Watch.Debounce)
	assert.Equal(t, int64(500), cfg.WatchDebounce().Milliseconds())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)

	decl, err := cfg.Declaration("")
	require.NoError(t, err)
	_, err = site.Build(decl)
	require.NoError(t, err)

	public, err := cfg.Declaration("public")
	require.NoError(t, err)
	built, err := site.Build(public)
	require.NoError(t, err)
	assert.Equal(t, site.TitleFromLogo, built.TitleSource())
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var sb strings.Builder
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&sb, false)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, sb.String(), "hidden")
	assert.Contains(t, sb.String(), `"msg":"shown"`)

	sb.Reset()
	LoggingConfig{Level: LogLevelError}.NewLogger(&sb, true).Debug("verbose")
	assert.Contains(t, sb.String(), "msg=verbose")
}
