package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

const testLayoutYAML = `
id: 7
name: mini
width: 200
height: 100
keyXMargin: 2
keyYMargin: 3
keyTypes:
  - id: 0
    bg: { fill: "#464650" }
    color: "#ffffff"
  - id: 1
    bg: { fill: "#3c3c46" }
rows:
  - keys:
      - { code: a, balloon: true }
      - { code: b, popup: 2 }
  - keys:
      - { code: DELETE, label: Del, width: 2, type: 1, repeat: true }
`

// TestParseSkbLayoutConfig 测试解析布局配置
func TestParseSkbLayoutConfig(t *testing.T) {
	cfg, err := ParseSkbLayoutConfig([]byte(testLayoutYAML))
	if err != nil {
		t.Fatalf("ParseSkbLayoutConfig failed: %v", err)
	}

	if cfg.ID != 7 || cfg.Name != "mini" {
		t.Errorf("id/name = %d/%q, want 7/mini", cfg.ID, cfg.Name)
	}
	if cfg.KeyXMargin != 2 || cfg.KeyYMargin != 3 {
		t.Errorf("margins = %d/%d, want 2/3", cfg.KeyXMargin, cfg.KeyYMargin)
	}
	if len(cfg.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(cfg.Rows))
	}

	del := cfg.Rows[1].Keys[0]
	if del.Code != "DELETE" || !del.Repeat || del.Type != 1 || del.WidthFactor() != 2 {
		t.Errorf("unexpected DELETE key config: %+v", del)
	}
	if cfg.Rows[0].Keys[0].WidthFactor() != 1.0 {
		t.Errorf("default width factor = %v, want 1.0", cfg.Rows[0].Keys[0].WidthFactor())
	}
	if cfg.Rows[0].Keys[1].Popup != 2 {
		t.Errorf("popup = %d, want 2", cfg.Rows[0].Keys[1].Popup)
	}
}

// TestSkbLayoutConfig_Validate 测试配置校验
func TestSkbLayoutConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero size", "width: 0\nheight: 10\nrows: [{keys: [{code: a}]}]\n"},
		{"no rows", "width: 10\nheight: 10\n"},
		{"empty row", "width: 10\nheight: 10\nrows: [{keys: []}]\n"},
		{"empty code", "width: 10\nheight: 10\nrows: [{keys: [{label: x}]}]\n"},
		{"negative margin", "width: 10\nheight: 10\nkeyXMargin: -1\nrows: [{keys: [{code: a}]}]\n"},
		{"unknown type", "width: 10\nheight: 10\nkeyTypes: [{id: 0}]\nrows: [{keys: [{code: a, type: 3}]}]\n"},
		{"bad yaml", "width: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSkbLayoutConfig([]byte(tt.yaml)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

// TestLoadSkbLayoutConfig 测试从文件加载
func TestLoadSkbLayoutConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	if err := os.WriteFile(path, []byte(testLayoutYAML), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadSkbLayoutConfig(path)
	if err != nil {
		t.Fatalf("LoadSkbLayoutConfig failed: %v", err)
	}
	if cfg.Name != "mini" {
		t.Errorf("name = %q, want mini", cfg.Name)
	}

	if _, err := LoadSkbLayoutConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestParseColor 测试颜色解析
func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}, false},
		{"#00ff0080", color.RGBA{G: 128, A: 128}, false},
		{"", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, true},
		{"#00ff00zz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
