package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLayoutWatcher_ReloadOnWrite 测试文件修改后投递新布局
func TestLayoutWatcher_ReloadOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(testLayoutYAML), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lw, err := NewLayoutWatcher(path)
	if err != nil {
		t.Fatalf("NewLayoutWatcher failed: %v", err)
	}
	defer lw.Stop()

	updated := strings.Replace(testLayoutYAML, "name: mini", "name: renamed", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case cfg := <-lw.Updates():
		if cfg.Name != "renamed" {
			t.Errorf("reloaded name = %q, want renamed", cfg.Name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for layout reload")
	}
}

// TestLayoutWatcher_InvalidWriteKeepsCurrent 测试无效内容不投递
func TestLayoutWatcher_InvalidWriteKeepsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(testLayoutYAML), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lw, err := NewLayoutWatcher(path)
	if err != nil {
		t.Fatalf("NewLayoutWatcher failed: %v", err)
	}
	defer lw.Stop()

	if err := os.WriteFile(path, []byte("width: 0\n"), 0o644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	select {
	case cfg := <-lw.Updates():
		t.Errorf("unexpected layout delivered: %+v", cfg)
	case <-time.After(layoutReloadDebounce * 3):
	}
}

// TestLayoutWatcher_StopIdempotent 测试重复 Stop
func TestLayoutWatcher_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(testLayoutYAML), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lw, err := NewLayoutWatcher(path)
	if err != nil {
		t.Fatalf("NewLayoutWatcher failed: %v", err)
	}
	lw.Stop()
	lw.Stop()
}
