package emit

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
	"github.com/google/renameio/v2"
)

// Result describes one emission.
type Result struct {
	Path        string
	Fingerprint string
	Changed     bool
	Content     []byte
}

// Emit renders cfg for target and writes it under root, skipping the write
// when the recorded fingerprint matches and the file on disk still holds the
// rendered content.
func Emit(cfg *site.Config, target, root string, opts Options) (*Result, error) {
	e, ok := Get(target)
	if !ok {
		return nil, ferrors.ConfigError(fmt.Sprintf("no emitter for target %q", target)).
			WithContext("target", target).
			Build()
	}

	content, err := e.Render(cfg, opts)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryBuild, "render generator configuration").
			WithContext("target", target).
			Build()
	}

	path := filepath.Join(root, e.FileName())
	fp := Fingerprint(target, content)
	res := &Result{Path: path, Fingerprint: fp, Content: content}

	state, err := LoadState(root)
	if err != nil {
		slog.Warn("Ignoring unreadable emit state", logfields.Path(root), logfields.Error(err))
		state = &State{}
	}
	if prev, ok := state.Files[e.FileName()]; ok && prev == fp && onDisk(path, content) {
		slog.Debug("Generator configuration unchanged", logfields.Path(path), logfields.Target(target))
		return res, nil
	}

	if err := writeAtomic(path, content); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write generator configuration").
			WithContext("path", path).
			Build()
	}
	res.Changed = true

	state.set(e.FileName(), fp)
	if err := state.Save(root); err != nil {
		slog.Warn("Failed to persist emit state", logfields.Path(root), logfields.Error(err))
	}
	slog.Info("Wrote generator configuration", logfields.Path(path), logfields.Target(target))
	return res, nil
}

// writeAtomic writes data durably: temp file, fsync, rename.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()
	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func onDisk(path string, content []byte) bool {
	existing, err := os.ReadFile(path)
	return err == nil && bytes.Equal(existing, content)
}
