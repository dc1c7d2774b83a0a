package config

import (
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// exampleConfig mirrors a typical documentation project with a component
// title override and a public profile using a logo instead.
const exampleConfig = `version: "1.0"

project:
  root: .
  target: astro

integrations:
  - name: starlight
    options:
      title: Documentation
      favicon: /favicon.svg
      customCss:
        - ./src/tailwind.css
      social:
        email: mailto:docs@example.com
      components:
        SiteTitle: ./src/components/SiteTitle.astro
      # sidebar:
      #   - label: Guides
      #     items:
      #       - label: Example Guide
      #         slug: guides/example
      #   - label: Reference
      #     autogenerate:
      #       directory: reference
  - name: tailwind
    options:
      applyBaseStyles: false

profiles:
  public:
    starlight:
      logo:
        src: ./src/assets/logo.svg
      components:
        SiteTitle: ""

logging:
  level: info
  format: text
`

// Init writes an example declaration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s", configPath)).
			WithHint("use --force to overwrite").
			Build()
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration file").Build()
	}
	return nil
}
