// Package testhelpers builds disposable, hermetic rit repositories for
// tests: a Scene wraps a temp directory, an open store, and an
// in-memory archive.FakeRunner instead of a real git repository.
package testhelpers

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"rit.dev/rit/internal/archive"
	"rit.dev/rit/internal/config"
	"rit.dev/rit/internal/layout"
	"rit.dev/rit/internal/rotation"
	"rit.dev/rit/internal/snapshot"
	"rit.dev/rit/internal/store"
)

// Scene is a disposable rit repository rooted at a temp directory, wired
// with a fake archive tool so tests never shell out to a real tar binary.
type Scene struct {
	Dir     string
	Layout  *layout.Layout
	Store   *store.Store
	Archive *archive.FakeRunner
	Proto   *snapshot.Protocol

	// ForceDirty, when true, makes every subsequent Create call report a
	// changed working tree, exercising Checkout's dirty-refusal path
	// without a real filesystem mutation.
	ForceDirty bool

	generation int
}

// NewScene creates a fresh Scene backed by t.TempDir, with a FakeRunner
// whose Create call writes distinct index/archive bytes on every
// invocation (so successive commits hash to distinct ids) and reports a
// clean working tree unless ForceDirty is set.
func NewScene(t *testing.T) *Scene {
	t.Helper()

	dir := t.TempDir()
	l, err := layout.Init(dir)
	if err != nil {
		t.Fatalf("failed to init rit layout: %v", err)
	}
	s := store.Open(l)

	sc := &Scene{Dir: dir, Layout: l, Store: s}
	sc.Archive = &archive.FakeRunner{
		CreateFunc: func(_ context.Context, indexPath, archivePath, _ string, _ []string, out io.Writer) error {
			gen := sc.nextGeneration()
			if err := writeFile(indexPath, fmt.Sprintf("index-%d", gen)); err != nil {
				return err
			}
			if err := writeFile(archivePath, fmt.Sprintf("archive-%d", gen)); err != nil {
				return err
			}
			if out != nil {
				if sc.ForceDirty {
					_, _ = io.WriteString(out, "./\nchanged-file\n")
				} else {
					_, _ = io.WriteString(out, "./\n")
				}
			}
			return nil
		},
	}
	sc.Proto = snapshot.New(l, s, sc.Archive)
	return sc
}

// Scheduler builds a rotation.Scheduler over the scene's store and
// protocol with cfg.
func (sc *Scene) Scheduler(cfg config.RotationConfig) *rotation.Scheduler {
	return rotation.New(sc.Store, sc.Proto, cfg)
}

func (sc *Scene) nextGeneration() int {
	sc.generation++
	return sc.generation
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
