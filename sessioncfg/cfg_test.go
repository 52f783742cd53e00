package sessioncfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesDeviceFactoryAddressing(t *testing.T) {
	cfg := Default()
	if cfg.VID != 0x0483 || cfg.PID != 0x2D42 {
		t.Fatalf("got vid=%#x pid=%#x, want 0x0483/0x2D42", cfg.VID, cfg.PID)
	}
	if cfg.WriteEndpoint != 0x02 || cfg.ReadEndpoint != 0x81 {
		t.Fatalf("got write=%#x read=%#x, want 0x02/0x81", cfg.WriteEndpoint, cfg.ReadEndpoint)
	}
}

func TestLoadYamlOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hantek.yaml")
	if err := os.WriteFile(path, []byte("vid: 0x1111\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadYaml(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenTimeout != 2*time.Second {
		t.Errorf("expected unset OpenTimeout to keep default, got %s", cfg.OpenTimeout)
	}
	if cfg.PID != 0x2D42 {
		t.Errorf("expected unset PID to keep default, got %#x", cfg.PID)
	}
}

func TestLoadYamlMissingFileReturnsError(t *testing.T) {
	_, err := LoadYaml(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
