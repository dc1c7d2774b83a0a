package config

import "git.home.luguber.info/inful/docsite/internal/foundation/normalization"

// Target selects which external generator the configuration is emitted for.
type Target string

const (
	TargetAstro Target = "astro"
	TargetHugo  Target = "hugo"
)

var targetNormalizer = normalization.NewNormalizer(map[string]Target{
	"astro":     TargetAstro,
	"starlight": TargetAstro,
	"hugo":      TargetHugo,
}, TargetAstro)

// NormalizeTarget returns the canonical target or an error listing valid ones.
func NormalizeTarget(raw string) (Target, error) {
	return targetNormalizer.NormalizeWithError(raw)
}

// Targets returns the accepted target spellings.
func Targets() []string { return targetNormalizer.ValidKeys() }
