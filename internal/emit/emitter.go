// Package emit renders a validated site configuration into the native
// configuration file of an external static site generator.
package emit

import (
	"sort"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// Options carries project layout details an emitter may need.
type Options struct {
	OutputDir string // generator output directory, relative to the project root
	Source    string // declaration file, mentioned in the generated header
}

// Emitter renders a configuration for one generator target.
type Emitter interface {
	Target() string
	// FileName is the emitted file, relative to the project root.
	FileName() string
	Render(cfg *site.Config, opts Options) ([]byte, error)
	// Command is the default generator invocation run from the project root.
	Command(opts Options) []string
}

var (
	regMu sync.RWMutex
	reg   = map[string]Emitter{}
)

// Register adds an emitter; the first registration for a target wins.
func Register(e Emitter) {
	if e == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[e.Target()]; !ok {
		reg[e.Target()] = e
	}
}

// Get returns the emitter registered for target.
func Get(target string) (Emitter, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	e, ok := reg[target]
	return e, ok
}

// Targets lists registered targets, sorted.
func Targets() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(reg))
	for t := range reg {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
