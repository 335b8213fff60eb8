package setcfg

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSetChanges(t *testing.T) {
	dir := newTree(t)
	l := NewLoader(dir)

	changed := make(chan string, 16)
	w, err := NewWatcher(l.Paths(), func(p string) { changed <- p })
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	target := filepath.Join(dir, "sets", "EDG", "profiles", "f2p.yaml")
	writeFile(t, target, profileYAML+"\nnotes: edited\n")

	select {
	case p := <-changed:
		if filepath.Base(p) != "f2p.yaml" {
			t.Fatalf("unexpected path %s", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestRelevantIgnoresOtherFiles(t *testing.T) {
	dir := newTree(t)
	changed := make(chan string, 16)
	w, err := NewWatcher(Paths{BaseDir: dir}, func(p string) { changed <- p })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.Start(context.Background())

	writeFile(t, filepath.Join(dir, "sets", "README.md"), "still not a set")
	writeFile(t, filepath.Join(dir, "sets", "TML.toml"), setTOML)

	select {
	case p := <-changed:
		if filepath.Ext(p) != ".toml" {
			t.Fatalf("non-config file reported: %s", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
