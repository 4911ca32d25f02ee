package systems

import (
	"image"
	"testing"

	"github.com/decker502/softkeyboard/pkg/components"
)

// TestDraw_NoLayout 测试没有布局时不绘制
func TestDraw_NoLayout(t *testing.T) {
	view := NewSoftKeyboardView(NewKeyFeedback(nil, nil, nil, nil), nil)
	c := &fakeCanvas{w: 100, h: 50}
	view.DimSoftKeyboard(true)
	view.Draw(c)

	if len(c.ops) != 0 {
		t.Errorf("ops = %v, want none", c.ops)
	}
}

// TestDraw_KeysAndLabels 测试背景、文字位置和字号
func TestDraw_KeysAndLabels(t *testing.T) {
	f := newInlineViewFixture(allFeedback)
	f.skb.KeyXMargin = 2
	f.skb.KeyYMargin = 3
	f.b.KeyType = &components.SoftKeyType{ID: components.KeyTypeIDFunction, Bg: &components.KeyBackground{}}

	c := &fakeCanvas{w: 100, h: 50}
	f.view.Draw(c)

	if len(c.bgs) != 2 {
		t.Fatalf("backgrounds = %d, want 2", len(c.bgs))
	}
	if c.bgs[0].rect != image.Rect(2, 3, 48, 47) {
		t.Errorf("A background rect = %v, want (2,3)-(48,47)", c.bgs[0].rect)
	}
	if c.bgs[0].bg != f.a.KeyBg() {
		t.Error("unpressed key should use its normal background")
	}

	if len(c.texts) != 2 {
		t.Fatalf("texts = %d, want 2", len(c.texts))
	}
	// x = (50 - 10) / 2；y = 17.5 + 12 + 3/1.5 + 1
	a := c.texts[0]
	if a.x != 20 || a.y != 32.5 {
		t.Errorf("A label at (%v, %v), want (20, 32.5)", a.x, a.y)
	}
	if a.size != f.env.KeyTextSize(false) {
		t.Errorf("A text size = %v, want %v", a.size, f.env.KeyTextSize(false))
	}
	if c.texts[1].size != f.env.KeyTextSize(true) {
		t.Errorf("B text size = %v, want function size %v", c.texts[1].size, f.env.KeyTextSize(true))
	}
	if len(c.fills) != 0 {
		t.Error("no scrim without dim")
	}
}

// TestDraw_PressedKeyHighlighted 测试按下的按键使用高亮背景和文字颜色
func TestDraw_PressedKeyHighlighted(t *testing.T) {
	f := newInlineViewFixture(allFeedback)
	f.view.OnKeyPress(25, 25, f.timer)

	c := &fakeCanvas{w: 100, h: 50}
	f.view.Draw(c)

	if c.bgs[0].bg != f.a.KeyHlBg() {
		t.Error("pressed key should use the highlight background")
	}
	if c.texts[0].color != f.a.ColorHl() {
		t.Errorf("pressed label color = %v, want %v", c.texts[0].color, f.a.ColorHl())
	}
	if c.bgs[1].bg != f.b.KeyBg() {
		t.Error("other key should use its normal background")
	}
	if !f.view.DirtyRect().Empty() {
		t.Error("dirty region should be cleared after draw")
	}

	// 释放后恢复普通背景
	f.view.OnKeyRelease(25, 25)
	c = &fakeCanvas{w: 100, h: 50}
	f.view.Draw(c)
	if c.bgs[0].bg != f.a.KeyBg() {
		t.Error("released key should use its normal background")
	}
}

// TestDraw_PaddingAndDim 测试内边距平移和变暗遮罩
func TestDraw_PaddingAndDim(t *testing.T) {
	f := newInlineViewFixture(allFeedback)
	f.view.SetPadding(4, 5, 0, 0)
	f.view.DimSoftKeyboard(true)

	c := &fakeCanvas{w: 104, h: 55}
	f.view.Draw(c)

	if c.texts[0].tx != 4 || c.texts[0].ty != 5 {
		t.Errorf("labels drawn with translation (%d,%d), want (4,5)", c.texts[0].tx, c.texts[0].ty)
	}
	if c.dx != 0 || c.dy != 0 {
		t.Errorf("translation not restored: (%d,%d)", c.dx, c.dy)
	}
	if len(c.fills) != 1 || c.fills[0] != image.Rect(0, 0, 104, 55) {
		t.Errorf("scrim = %v, want whole view", c.fills)
	}
	if c.ops[len(c.ops)-1] != "fill" {
		t.Error("scrim should be drawn after keys")
	}
}

// TestIconRect 测试图标居中
func TestIconRect(t *testing.T) {
	key := &components.SoftKey{}
	key.SetDesignBounds(10, 20, 60, 70)

	if got, want := iconRect(key, 20, 10), image.Rect(25, 40, 45, 50); got != want {
		t.Errorf("iconRect = %v, want %v", got, want)
	}
}
