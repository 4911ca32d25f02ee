package systems

import (
	"image"
	"image/color"
	"time"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/game"
	"github.com/decker502/softkeyboard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 气泡延迟
const (
	// TimeDelayShow 普通按下时气泡的显示延迟
	TimeDelayShow = 40 * time.Millisecond
	// TimeDelayDismiss 释放后气泡的隐藏延迟
	TimeDelayDismiss = 200 * time.Millisecond
)

// balloonAction 待执行的气泡动作
type balloonAction int

const (
	balloonActionNone balloonAction = iota
	balloonActionShow
	balloonActionUpdate
	balloonActionHide
)

// BalloonHint 气泡提示
//
// 显示、更新、隐藏请求通过 utils.Scheduler 延迟执行，同一时刻最多一个待执行动作，
// 新请求会替换旧请求。延迟 <= 0 的请求立即生效。
type BalloonHint struct {
	scheduler *utils.Scheduler
	fonts     *game.FontCache

	bg       *components.KeyBackground
	icon     *ebiten.Image
	label    string
	textSize float64
	bold     bool
	color    color.RGBA

	width, height int
	loc           image.Point
	showing       bool
	forceDismiss  bool

	pending       utils.TaskID
	pendingAction balloonAction
	pendingLoc    image.Point
	pendingW      int
	pendingH      int
}

// NewBalloonHint 创建气泡
// fonts 为 nil 时气泡只绘制背景和图标
func NewBalloonHint(scheduler *utils.Scheduler, fonts *game.FontCache) *BalloonHint {
	return &BalloonHint{
		scheduler: scheduler,
		fonts:     fonts,
	}
}

// SetBalloonBackground 设置背景
func (b *BalloonHint) SetBalloonBackground(bg *components.KeyBackground) {
	b.bg = bg
}

// SetIconConfig 以图标内容配置气泡
func (b *BalloonHint) SetIconConfig(icon *ebiten.Image, width, height int) {
	b.icon = icon
	b.label = ""
	b.resize(width, height)
}

// SetLabelConfig 以文字内容配置气泡
func (b *BalloonHint) SetLabelConfig(label string, textSize float64, bold bool, c color.RGBA, width, height int) {
	b.icon = nil
	b.label = label
	b.textSize = textSize
	b.bold = bold
	b.color = c
	b.resize(width, height)
}

// resize 更新尺寸，显示中的气泡宽度变化超过 1 像素时需要先强制隐藏
func (b *BalloonHint) resize(width, height int) {
	diff := width - b.width
	if diff < 0 {
		diff = -diff
	}
	b.forceDismiss = b.showing && diff > 1
	b.width = width
	b.height = height
}

// Width 宽度
func (b *BalloonHint) Width() int { return b.width }

// Height 高度
func (b *BalloonHint) Height() int { return b.height }

// Location 在容器中的位置
func (b *BalloonHint) Location() image.Point { return b.loc }

// Label 当前文字
func (b *BalloonHint) Label() string { return b.label }

// IsShowing 是否显示中
func (b *BalloonHint) IsShowing() bool { return b.showing }

// NeedForceDismiss 是否需要先强制隐藏
func (b *BalloonHint) NeedForceDismiss() bool { return b.forceDismiss }

// HasPendingAction 是否有待执行的动作
func (b *BalloonHint) HasPendingAction() bool {
	return b.pendingAction != balloonActionNone
}

// DelayedShow 延迟显示
func (b *BalloonHint) DelayedShow(delay time.Duration, loc image.Point) {
	b.cancelPending()
	if delay <= 0 {
		b.show(loc)
		return
	}
	b.schedule(delay, balloonActionShow, loc, b.width, b.height)
}

// DelayedUpdate 延迟更新位置和尺寸
func (b *BalloonHint) DelayedUpdate(delay time.Duration, loc image.Point, width, height int) {
	b.cancelPending()
	if delay <= 0 {
		b.update(loc, width, height)
		return
	}
	b.schedule(delay, balloonActionUpdate, loc, width, height)
}

// DelayedDismiss 延迟隐藏
//
// 有延迟时，尚未执行的显示/更新动作先立即执行，保证气泡至少出现一次。
func (b *BalloonHint) DelayedDismiss(delay time.Duration) {
	if b.HasPendingAction() {
		action := b.pendingAction
		loc, w, h := b.pendingLoc, b.pendingW, b.pendingH
		b.cancelPending()
		if delay != 0 && action != balloonActionHide {
			b.run(action, loc, w, h)
		}
	}

	if delay <= 0 {
		b.dismiss()
		return
	}
	b.schedule(delay, balloonActionHide, image.Point{}, 0, 0)
}

func (b *BalloonHint) schedule(delay time.Duration, action balloonAction, loc image.Point, w, h int) {
	b.pendingAction = action
	b.pendingLoc = loc
	b.pendingW = w
	b.pendingH = h
	b.pending = b.scheduler.Schedule(delay, func() {
		b.pending = 0
		b.pendingAction = balloonActionNone
		b.run(action, loc, w, h)
	})
}

func (b *BalloonHint) cancelPending() {
	if b.pending != 0 {
		b.scheduler.Cancel(b.pending)
	}
	b.pending = 0
	b.pendingAction = balloonActionNone
}

func (b *BalloonHint) run(action balloonAction, loc image.Point, w, h int) {
	switch action {
	case balloonActionShow:
		b.show(loc)
	case balloonActionUpdate:
		b.update(loc, w, h)
	case balloonActionHide:
		b.dismiss()
	}
}

func (b *BalloonHint) show(loc image.Point) {
	b.loc = loc
	b.showing = true
	b.forceDismiss = false
}

func (b *BalloonHint) update(loc image.Point, w, h int) {
	b.loc = loc
	b.width = w
	b.height = h
	b.showing = true
}

func (b *BalloonHint) dismiss() {
	b.showing = false
	b.forceDismiss = false
}

// Draw 绘制气泡（容器坐标）
func (b *BalloonHint) Draw(screen *ebiten.Image) {
	if !b.showing || b.width <= 0 || b.height <= 0 {
		return
	}

	rect := image.Rect(b.loc.X, b.loc.Y, b.loc.X+b.width, b.loc.Y+b.height)
	c := NewEbitenCanvas(screen, b.fonts)
	c.DrawBackground(b.bg, rect)

	if b.icon != nil {
		iw, ih := b.icon.Bounds().Dx(), b.icon.Bounds().Dy()
		x := rect.Min.X + (b.width-iw)/2
		y := rect.Min.Y + (b.height-ih)/2
		c.DrawIcon(b.icon, image.Rect(x, y, x+iw, y+ih))
		return
	}
	if b.label == "" {
		return
	}

	c.SetTextSize(b.textSize)
	c.SetColor(b.color)
	fm := c.FontMetrics()
	x := float64(rect.Min.X) + (float64(b.width)-c.MeasureText(b.label))/2
	y := float64(rect.Min.Y) + (float64(b.height)-(fm.Bottom-fm.Top))/2 - fm.Top
	c.DrawText(b.label, x, y)
	if b.bold {
		// 偏移一像素叠加一次模拟粗体
		c.DrawText(b.label, x+1, y)
	}
}
