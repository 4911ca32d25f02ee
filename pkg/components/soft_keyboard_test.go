package components

import (
	"testing"
)

// newTestKeyboard 创建两键布局：A(0,0,50,50) 与 B(50,0,100,50)
func newTestKeyboard() (*SoftKeyboard, *SoftKey, *SoftKey) {
	skb := NewSoftKeyboard(1, "test", 100, 50)
	normal := &SoftKeyType{ID: KeyTypeIDNormal}
	a := &SoftKey{KeyType: normal, KeyCode: 'a', Label: "a"}
	a.SetDesignBounds(0, 0, 50, 50)
	b := &SoftKey{KeyType: normal, KeyCode: 'b', Label: "b"}
	b.SetDesignBounds(50, 0, 100, 50)
	skb.AddRow(&KeyRow{SoftKeys: []*SoftKey{a, b}, Top: 0, Bottom: 50})
	return skb, a, b
}

// TestMapToKey_EveryPointInsideKey 测试按键内所有点都映射到该按键
func TestMapToKey_EveryPointInsideKey(t *testing.T) {
	skb, _, _ := newTestKeyboard()

	for _, key := range skb.AllKeys() {
		for x := key.Left; x < key.Right; x++ {
			for y := key.Top; y < key.Bottom; y++ {
				got := skb.MapToKey(x, y)
				if got != key {
					t.Fatalf("MapToKey(%d, %d) = %v, want key %q", x, y, got, key.Label)
				}
				if !got.MoveWithinKey(x, y) {
					t.Fatalf("MoveWithinKey(%d, %d) = false for key %q", x, y, key.Label)
				}
			}
		}
	}
}

// TestMapToKey_Boundaries 测试边界归属（左/上包含，右/下不包含）
func TestMapToKey_Boundaries(t *testing.T) {
	skb, a, b := newTestKeyboard()

	tests := []struct {
		name string
		x, y int
		want *SoftKey
	}{
		{"origin belongs to A", 0, 0, a},
		{"shared edge belongs to B", 50, 25, b},
		{"last column of A", 49, 25, a},
		{"right edge of B is outside", 100, 25, nil},
		{"bottom edge is outside", 25, 50, nil},
		{"negative coordinate", -1, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skb.MapToKey(tt.x, tt.y); got != tt.want {
				t.Errorf("MapToKey(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestSetSkbCoreSize 测试按比例缩放按键边界
func TestSetSkbCoreSize(t *testing.T) {
	skb, a, b := newTestKeyboard()

	skb.SetSkbCoreSize(200, 100)

	if skb.SkbCoreWidth() != 200 || skb.SkbCoreHeight() != 100 {
		t.Fatalf("core size = %dx%d, want 200x100", skb.SkbCoreWidth(), skb.SkbCoreHeight())
	}
	if a.Right != 100 || a.Bottom != 100 {
		t.Errorf("key A bounds = %v, want right=100 bottom=100", a.Bounds())
	}
	if b.Left != 100 || b.Right != 200 {
		t.Errorf("key B bounds = %v, want left=100 right=200", b.Bounds())
	}
	if got := skb.MapToKey(150, 50); got != b {
		t.Errorf("MapToKey after resize = %v, want B", got)
	}

	// 非法尺寸忽略
	skb.SetSkbCoreSize(0, 10)
	if skb.SkbCoreWidth() != 200 {
		t.Errorf("core width changed on invalid size: %d", skb.SkbCoreWidth())
	}
}

// TestKeyRowForDisplay 测试越界行返回 nil
func TestKeyRowForDisplay(t *testing.T) {
	skb, _, _ := newTestKeyboard()

	if skb.KeyRowForDisplay(0) == nil {
		t.Error("row 0 should exist")
	}
	if skb.KeyRowForDisplay(1) != nil {
		t.Error("row 1 should be nil")
	}
	if skb.KeyRowForDisplay(-1) != nil {
		t.Error("row -1 should be nil")
	}
}

// TestSoftKey_TypeAccessors 测试无类型按键的默认值
func TestSoftKey_TypeAccessors(t *testing.T) {
	key := &SoftKey{}
	if key.IsFunctionKey() {
		t.Error("key without type should not be a function key")
	}
	if key.KeyBg() != nil || key.KeyHlBg() != nil {
		t.Error("key without type should have no backgrounds")
	}

	fn := &SoftKey{KeyType: &SoftKeyType{ID: KeyTypeIDFunction}}
	if !fn.IsFunctionKey() {
		t.Error("function key type not detected")
	}
}

// TestParseKeyCode 测试按键码解析
func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"SHIFT", KeyCodeShift},
		{"DELETE", KeyCodeDelete},
		{"SPACE", KeyCodeSpace},
		{"q", 'q'},
		{"中", '中'},
		{"unknown", KeyCodeNone},
	}
	for _, tt := range tests {
		if got := ParseKeyCode(tt.name); got != tt.want {
			t.Errorf("ParseKeyCode(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
