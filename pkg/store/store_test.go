package store

import (
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	disk, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load diskv: %v", err)
	}
	lite, err := Load(StaticConfig{Path: t.TempDir(), BackendName: BackendSQLite})
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	return map[string]Persistence{
		"diskv":  disk,
		"sqlite": lite,
		"memory": NewMemory(),
	}
}

func TestGetMissingKey(t *testing.T) {
	for name, p := range backends(t) {
		v, ok, err := p.Get("med_tracker_medications")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if ok || v != "" {
			t.Fatalf("%s: expected absent key, got %q", name, v)
		}
	}
}

func TestSetOverwrites(t *testing.T) {
	for name, p := range backends(t) {
		if err := p.Set("k", `[{"id":"1"}]`); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := p.Set("k", `[]`); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		v, ok, err := p.Get("k")
		if err != nil || !ok {
			t.Fatalf("%s: get: ok=%v err=%v", name, ok, err)
		}
		if v != "[]" {
			t.Fatalf("%s: expected overwritten value, got %q", name, v)
		}
	}
}

func TestDiskvSharesStateAcrossHandles(t *testing.T) {
	base := t.TempDir()
	first, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	second, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, _, err := first.Get("k"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := second.Set("k", "fresh"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := first.Get("k")
	if err != nil || !ok || v != "fresh" {
		t.Fatalf("expected other handle's write, got %q ok=%v err=%v", v, ok, err)
	}
	if _, err := os.Stat(filepath.Join(base, "k")); err != nil {
		t.Fatalf("expected flat key file: %v", err)
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	if _, err := Load(StaticConfig{Path: t.TempDir(), BackendName: "redis"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEDTRACK_CONFIG_PATH", dir)
	if err := os.WriteFile(filepath.Join(dir, ".medtrack.yaml"), []byte("path: "+dir+"/data\nbackend: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "data") {
		t.Fatalf("unexpected path %q", cfg.BasePath())
	}
	if cfg.Backend() != BackendSQLite {
		t.Fatalf("unexpected backend %q", cfg.Backend())
	}
	if ConfigFile(cfg) == "" {
		t.Fatalf("expected config file to be reported")
	}
}
