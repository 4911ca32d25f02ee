package systems

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// balloonCall 记录一次气泡请求
type balloonCall struct {
	op    string // show / update / dismiss
	delay time.Duration
	loc   image.Point
	w, h  int
}

func (c balloonCall) String() string {
	return fmt.Sprintf("%s(%v)", c.op, c.delay)
}

// fakeBalloon 记录请求的气泡，延迟 <= 0 的显示/隐藏立即改变状态
type fakeBalloon struct {
	calls        []balloonCall
	bg           *components.KeyBackground
	label        string
	textSize     float64
	icon         *ebiten.Image
	width        int
	height       int
	showing      bool
	forceDismiss bool
}

func (b *fakeBalloon) SetBalloonBackground(bg *components.KeyBackground) { b.bg = bg }

func (b *fakeBalloon) SetIconConfig(icon *ebiten.Image, width, height int) {
	b.icon = icon
	b.label = ""
	b.width, b.height = width, height
}

func (b *fakeBalloon) SetLabelConfig(label string, textSize float64, bold bool, c color.RGBA, width, height int) {
	b.icon = nil
	b.label = label
	b.textSize = textSize
	b.width, b.height = width, height
}

func (b *fakeBalloon) Width() int             { return b.width }
func (b *fakeBalloon) Height() int            { return b.height }
func (b *fakeBalloon) IsShowing() bool        { return b.showing }
func (b *fakeBalloon) NeedForceDismiss() bool { return b.forceDismiss }

func (b *fakeBalloon) DelayedShow(delay time.Duration, loc image.Point) {
	b.calls = append(b.calls, balloonCall{op: "show", delay: delay, loc: loc, w: b.width, h: b.height})
	if delay <= 0 {
		b.showing = true
	}
}

func (b *fakeBalloon) DelayedUpdate(delay time.Duration, loc image.Point, width, height int) {
	b.calls = append(b.calls, balloonCall{op: "update", delay: delay, loc: loc, w: width, h: height})
}

func (b *fakeBalloon) DelayedDismiss(delay time.Duration) {
	b.calls = append(b.calls, balloonCall{op: "dismiss", delay: delay})
	if delay <= 0 {
		b.showing = false
		b.forceDismiss = false
	}
}

func (b *fakeBalloon) ops() []string {
	var out []string
	for _, c := range b.calls {
		out = append(out, c.String())
	}
	return out
}

// fakeTimer 记录长按计时器调用
type fakeTimer struct {
	starts  int
	removes int
}

func (t *fakeTimer) StartTimer()  { t.starts++ }
func (t *fakeTimer) RemoveTimer() { t.removes++ }

// fakeSound 记录按键音
type fakeSound struct{ plays int }

func (s *fakeSound) PlayKeyDown() bool {
	s.plays++
	return true
}

// fakeVibrator 记录振动
type fakeVibrator struct{ count int }

func (v *fakeVibrator) VibrateKey() { v.count++ }

// fakeSettings 按键反馈开关
type fakeSettings struct {
	sound   bool
	vibrate bool
}

func (s fakeSettings) KeySoundEnabled() bool { return s.sound }
func (s fakeSettings) VibrateEnabled() bool  { return s.vibrate }

// fakeInvalidator 记录重绘请求
type fakeInvalidator struct {
	rects []image.Rectangle
	all   int
}

func (i *fakeInvalidator) Invalidate(r image.Rectangle) { i.rects = append(i.rects, r) }
func (i *fakeInvalidator) InvalidateAll()               { i.all++ }

// viewFixture 测试用的视图和所有协作者
type viewFixture struct {
	view     *SoftKeyboardView
	skb      *components.SoftKeyboard
	a, b     *components.SoftKey
	env      *config.Environment
	onKey    *fakeBalloon
	popup    *fakeBalloon
	timer    *fakeTimer
	sound    *fakeSound
	vibrator *fakeVibrator
	host     *fakeInvalidator
}

// newTwoKeyLayout 两键布局：A(0,0,50,50) 与 B(50,0,100,50)
func newTwoKeyLayout() (*components.SoftKeyboard, *components.SoftKey, *components.SoftKey) {
	skb := components.NewSoftKeyboard(1, "test", 100, 50)
	normal := &components.SoftKeyType{
		ID:      components.KeyTypeIDNormal,
		Bg:      &components.KeyBackground{Fill: color.RGBA{R: 200, G: 200, B: 200, A: 255}},
		HlBg:    &components.KeyBackground{Fill: color.RGBA{R: 100, G: 100, B: 255, A: 255}},
		Color:   color.RGBA{A: 255},
		ColorHl: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	a := &components.SoftKey{KeyType: normal, KeyCode: 'a', Label: "a"}
	a.SetDesignBounds(0, 0, 50, 50)
	b := &components.SoftKey{KeyType: normal, KeyCode: 'b', Label: "b"}
	b.SetDesignBounds(50, 0, 100, 50)
	skb.AddRow(&components.KeyRow{SoftKeys: []*components.SoftKey{a, b}, Top: 0, Bottom: 50})
	return skb, a, b
}

// newViewFixture 创建带按键上气泡和弹出气泡的视图
func newViewFixture(settings fakeSettings) *viewFixture {
	f := &viewFixture{
		env:      config.NewEnvironment(config.DefaultEnvironmentRatios(), 480, 800),
		onKey:    &fakeBalloon{},
		popup:    &fakeBalloon{},
		timer:    &fakeTimer{},
		sound:    &fakeSound{},
		vibrator: &fakeVibrator{},
		host:     &fakeInvalidator{},
	}
	f.skb, f.a, f.b = newTwoKeyLayout()

	feedback := NewKeyFeedback(f.sound, f.vibrator, settings, f.env)
	f.view = NewSoftKeyboardView(feedback, f.host)
	f.view.SetSoftKeyboard(f.skb)
	f.view.SetBalloonHint(f.onKey, f.popup, false)
	return f
}

// newInlineViewFixture 不配置按键上气泡，高亮直接绘制在键盘上
func newInlineViewFixture(settings fakeSettings) *viewFixture {
	f := newViewFixture(settings)
	f.view.SetBalloonHint(nil, f.popup, false)
	f.onKey = nil
	return f
}

// clearCalls 清空所有记录
func (f *viewFixture) clearCalls() {
	if f.onKey != nil {
		f.onKey.calls = nil
	}
	f.popup.calls = nil
	f.host.rects = nil
	f.host.all = 0
}

// fakeCanvas 记录绘制操作
type fakeCanvas struct {
	ops      []string
	dx, dy   int
	textSize float64
	color    color.RGBA
	w, h     int
	texts    []drawnText
	bgs      []drawnBg
	fills    []image.Rectangle
}

type drawnText struct {
	s      string
	x, y   float64
	size   float64
	color  color.RGBA
	tx, ty int
}

type drawnBg struct {
	bg   *components.KeyBackground
	rect image.Rectangle
}

func (c *fakeCanvas) Translate(dx, dy int) {
	c.dx += dx
	c.dy += dy
	c.ops = append(c.ops, fmt.Sprintf("translate(%d,%d)", dx, dy))
}

func (c *fakeCanvas) DrawBackground(bg *components.KeyBackground, rect image.Rectangle) {
	c.bgs = append(c.bgs, drawnBg{bg: bg, rect: rect})
	c.ops = append(c.ops, "bg")
}

func (c *fakeCanvas) DrawIcon(img *ebiten.Image, rect image.Rectangle) {
	c.ops = append(c.ops, "icon")
}

func (c *fakeCanvas) SetTextSize(size float64) { c.textSize = size }
func (c *fakeCanvas) SetColor(clr color.RGBA)  { c.color = clr }

// MeasureText 每个字符 10 像素
func (c *fakeCanvas) MeasureText(s string) float64 { return float64(10 * len(s)) }

func (c *fakeCanvas) FontMetrics() FontMetrics { return FontMetrics{Top: -12, Bottom: 3} }

func (c *fakeCanvas) DrawText(s string, x, y float64) {
	c.texts = append(c.texts, drawnText{s: s, x: x, y: y, size: c.textSize, color: c.color, tx: c.dx, ty: c.dy})
	c.ops = append(c.ops, "text:"+s)
}

func (c *fakeCanvas) FillRect(rect image.Rectangle, clr color.RGBA) {
	c.fills = append(c.fills, rect)
	c.ops = append(c.ops, "fill")
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }
