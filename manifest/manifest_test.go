package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "lox.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing lox.toml: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[run]
trace = true
chunk = "demo"

[store]
path = "programs.db"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !m.Run.Trace {
		t.Error("Run.Trace = false, want true")
	}
	if m.Run.Chunk != "demo" {
		t.Errorf("Run.Chunk = %q, want %q", m.Run.Chunk, "demo")
	}
	if m.Store.Path != "programs.db" {
		t.Errorf("Store.Path = %q, want %q", m.Store.Path, "programs.db")
	}
	if m.StorePath() != filepath.Join(m.Dir, "programs.db") {
		t.Errorf("StorePath() = %q", m.StorePath())
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.Run.Trace {
		t.Error("Run.Trace defaults to true, want false")
	}
	if m.Run.Chunk != "main" {
		t.Errorf("Run.Chunk = %q, want %q", m.Run.Chunk, "main")
	}
	if m.Store.Path != "lox.db" {
		t.Errorf("Store.Path = %q, want %q", m.Store.Path, "lox.db")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load with no lox.toml: expected error")
	}
}

func TestLoadBadToml(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[run\ntrace =")
	if _, err := Load(dir); err == nil {
		t.Error("Load with malformed toml: expected error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[run]\ntrace = true\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil, want manifest from root")
	}
	if !m.Run.Trace {
		t.Error("Run.Trace = false, want true")
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Errorf("FindAndLoad = %+v, want nil", m)
	}
}
