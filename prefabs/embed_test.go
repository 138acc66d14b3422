package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "player", "player.yaml"},
		{cleanPrefabPath, "prefabs/player.yaml", "player.yaml"},
		{cleanPrefabPath, "", ""},
		{cleanScriptPath, "patrol", "scripts/patrol.tengo"},
		{cleanScriptPath, "scripts/patrol.tengo", "scripts/patrol.tengo"},
		{cleanScriptPath, "prefabs/scripts/jump", "scripts/jump.tengo"},
		{cleanScriptPath, "", ""},
	}

	for _, c := range cases {
		if got := c.fn(c.in); got != c.want {
			t.Fatalf("clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLoadEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"patrol", "updown", "jump"} {
		t.Run(name, func(t *testing.T) {
			src, err := LoadScript(name)
			if err != nil {
				t.Fatalf("LoadScript(%q): %v", name, err)
			}
			if !strings.Contains(string(src), "update := func(body, state)") {
				t.Fatalf("script %q does not define update", name)
			}
		})
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

func TestWatcherEventFilter(t *testing.T) {
	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"prefabs/player.yaml", fsnotify.Write, true},
		{"prefabs/player.YML", fsnotify.Create, true},
		{"prefabs/scripts/patrol.tengo", fsnotify.Write, true},
		{"levels/sandbox.json", fsnotify.Rename, true},
		{"prefabs/player.yaml", fsnotify.Chmod, false},
		{"prefabs/player.yaml", fsnotify.Remove, false},
		{"prefabs/notes.txt", fsnotify.Write, false},
	}

	for _, c := range cases {
		if got := relevant(fsnotify.Event{Name: c.name, Op: c.op}); got != c.want {
			t.Fatalf("relevant(%s %v) = %v, want %v", c.name, c.op, got, c.want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "physics.yaml")
	if err := os.WriteFile(path, []byte("max_speed: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "physics.yaml" {
			t.Fatalf("unexpected event for %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", path)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
