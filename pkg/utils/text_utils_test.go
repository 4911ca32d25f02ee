package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("NewGoTextFaceSource failed: %v", err)
	}
	return &text.GoTextFace{Source: source, Size: 20}
}

// TestWrapText 测试文本折行
func TestWrapText(t *testing.T) {
	font := newTestFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "short", 1000, 1},
		{"长文本自动换行", "the quick brown fox jumps over the lazy dog", 120, 3},
		{"空文本", "", 100, 1},
		{"宽度为零", "abc", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("got %d lines, want at least %d: %q", len(lines), tt.expectMin, lines)
			}
			if joined := strings.Join(lines, ""); joined != tt.input {
				t.Errorf("joined lines = %q, want %q", joined, tt.input)
			}
			if tt.maxWidth <= 0 {
				return
			}
			for _, line := range lines {
				if len([]rune(line)) > 1 && measureTextWidth(line, font) > tt.maxWidth {
					t.Errorf("line %q is wider than %.0f", line, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapText_NarrowerThanOneChar 测试单个字符超宽时独占一行
func TestWrapText_NarrowerThanOneChar(t *testing.T) {
	lines := WrapText("ab", newTestFace(t), 1)
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Errorf("lines = %q, want [a b]", lines)
	}
}
