package emit

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// StateDir holds docsite bookkeeping inside the project root.
const StateDir = ".docsite"

const stateFile = "state.yaml"

// State records the fingerprint of each emitted file.
type State struct {
	Files map[string]string `yaml:"files"`
}

// Fingerprint identifies emitted content for a target.
func Fingerprint(target string, content []byte) string {
	return mdfp.CalculateFingerprintFromParts("target: "+target, string(content))
}

// LoadState reads the state under root; a missing file yields an empty state.
func LoadState(root string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(root, StateDir, stateFile))
	if errors.Is(err, os.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the state under root.
func (s *State) Save(root string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(root, StateDir, stateFile), data)
}

func (s *State) set(file, fingerprint string) {
	if s.Files == nil {
		s.Files = map[string]string{}
	}
	s.Files[file] = fingerprint
}
