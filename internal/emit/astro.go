package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// AstroEmitter writes astro.config.mjs with the documentation theme and
// styling integrations.
type AstroEmitter struct{}

func (AstroEmitter) Target() string   { return "astro" }
func (AstroEmitter) FileName() string { return "astro.config.mjs" }

// Command returns `npx astro build`, passing the output directory when set.
func (AstroEmitter) Command(opts Options) []string {
	cmd := []string{"npx", "astro", "build"}
	if opts.OutputDir != "" {
		cmd = append(cmd, "--outDir", opts.OutputDir)
	}
	return cmd
}

var astroTemplate = template.Must(template.New("astro").Parse(`// Generated by docsite{{if .Source}} from {{.Source}}{{end}}. Do not edit.
import { defineConfig } from 'astro/config';
{{- range .Imports}}
import {{.Ident}} from '{{.Module}}';
{{- end}}

export default defineConfig({
	integrations: [
{{- range .Integrations}}
		{{.Ident}}({{.Options}}),
{{- end}}
	],
});
`))

type astroIntegration struct {
	Ident   string
	Module  string
	Options string
}

var astroModules = map[string]string{
	site.PluginNameStarlight: "@astrojs/starlight",
	site.PluginNameTailwind:  "@astrojs/tailwind",
}

// Render writes a defineConfig module with one call per plugin, in plugin order.
func (AstroEmitter) Render(cfg *site.Config, opts Options) ([]byte, error) {
	var integrations []astroIntegration
	for _, p := range cfg.Plugins() {
		if p.Kind == site.PluginCore {
			continue
		}
		module, ok := astroModules[p.Name]
		if !ok {
			return nil, fmt.Errorf("no astro module for plugin %q", p.Name)
		}
		literal, err := objectLiteral(p.Options)
		if err != nil {
			return nil, fmt.Errorf("encode %s options: %w", p.Name, err)
		}
		integrations = append(integrations, astroIntegration{Ident: p.Name, Module: module, Options: literal})
	}

	var buf bytes.Buffer
	err := astroTemplate.Execute(&buf, map[string]any{
		"Source":       opts.Source,
		"Imports":      integrations,
		"Integrations": integrations,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// objectLiteral encodes options as a JSON object, which is a valid
// JavaScript object literal, indented to sit inside the integrations array.
func objectLiteral(options map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("\t\t", "\t")
	if err := enc.Encode(options); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func init() { Register(AstroEmitter{}) }
