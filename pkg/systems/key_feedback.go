package systems

import (
	"image"
	"image/color"
	"time"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// Balloon 气泡提示
// 显示、更新、隐藏都是带延迟的异步请求，调用后立即返回
type Balloon interface {
	SetBalloonBackground(bg *components.KeyBackground)
	SetIconConfig(icon *ebiten.Image, width, height int)
	SetLabelConfig(label string, textSize float64, bold bool, c color.RGBA, width, height int)
	Width() int
	Height() int
	IsShowing() bool
	NeedForceDismiss() bool
	DelayedShow(delay time.Duration, loc image.Point)
	DelayedUpdate(delay time.Duration, loc image.Point, width, height int)
	DelayedDismiss(delay time.Duration)
}

// KeySoundPlayer 按键音
type KeySoundPlayer interface {
	PlayKeyDown() bool
}

// Vibrator 按键振动
type Vibrator interface {
	VibrateKey()
}

// FeedbackSettings 按键反馈开关，每次按下时读取
type FeedbackSettings interface {
	KeySoundEnabled() bool
	VibrateEnabled() bool
}

// KeyFeedback 按键反馈分发器
//
// 决定每次按下时触发哪些副作用：按键音、振动、按键上的高亮气泡和弹出预览气泡。
// 所有协作者都在构造时注入，任何一个为 nil 时对应反馈不生效。
type KeyFeedback struct {
	sound    KeySoundPlayer
	vibrator Vibrator
	settings FeedbackSettings
	env      *config.Environment

	onKey Balloon // 按键上的高亮气泡，nil 表示直接在键盘上重绘高亮
	popup Balloon // 弹出预览气泡
}

// NewKeyFeedback 创建反馈分发器
// env 为 nil 时使用默认比例和 800x480 的屏幕尺寸
func NewKeyFeedback(sound KeySoundPlayer, vibrator Vibrator, settings FeedbackSettings, env *config.Environment) *KeyFeedback {
	if env == nil {
		env = config.NewEnvironment(config.DefaultEnvironmentRatios(), 800, 480)
	}
	return &KeyFeedback{
		sound:    sound,
		vibrator: vibrator,
		settings: settings,
		env:      env,
	}
}

// Environment 当前环境配置
func (f *KeyFeedback) Environment() *config.Environment {
	return f.env
}

func (f *KeyFeedback) setBalloons(onKey, popup Balloon) {
	f.onKey = onKey
	f.popup = popup
}

// HasOnKeyBalloon 是否配置了按键高亮气泡
func (f *KeyFeedback) HasOnKeyBalloon() bool {
	return f.onKey != nil
}

// keyDown 真实按下时的按键音和振动，两者各自受设置控制
func (f *KeyFeedback) keyDown() {
	if f.settings == nil {
		return
	}
	if f.sound != nil && f.settings.KeySoundEnabled() {
		f.sound.PlayKeyDown()
	}
	if f.vibrator != nil && f.settings.VibrateEnabled() {
		f.vibrator.VibrateKey()
	}
}

// showOnKeyBalloon 在按键上方显示高亮气泡
//
// 气泡尺寸为按键去掉两侧边距，水平居中于按键，底部对齐到按键底边减去纵向边距。
// origin 为按键坐标系原点在容器中的位置（内边距 + 视图偏移）。
func (f *KeyFeedback) showOnKeyBalloon(key *components.SoftKey, xMargin, yMargin int, origin image.Point, movePress bool) {
	b := f.onKey
	b.SetBalloonBackground(key.KeyHlBg())

	width := key.Width() - 2*xMargin
	height := key.Height() - 2*yMargin
	if key.Icon != nil {
		b.SetIconConfig(key.Icon, width, height)
	} else {
		textSize := f.env.KeyTextSize(key.IsFunctionKey())
		b.SetLabelConfig(key.Label, textSize, true, key.ColorHl(), width, height)
	}

	loc := image.Point{
		X: origin.X + key.Left - (b.Width()-key.Width())/2,
		Y: origin.Y + key.Bottom - yMargin - b.Height(),
	}
	showBalloon(b, loc, movePress)
}

// showPopupBalloon 在按键上方显示弹出预览气泡
//
// 气泡尺寸为按键加上环境配置的额外宽高，水平居中于按键，底边对齐按键顶边。
func (f *KeyFeedback) showPopupBalloon(key *components.SoftKey, bg *components.KeyBackground, origin image.Point, movePress bool) {
	b := f.popup
	b.SetBalloonBackground(bg)

	width := key.Width() + f.env.KeyBalloonWidthPlus()
	height := key.Height() + f.env.KeyBalloonHeightPlus()
	if key.IconPopup != nil {
		b.SetIconConfig(key.IconPopup, width, height)
	} else {
		textSize := f.env.BalloonTextSize(key.IsFunctionKey())
		b.SetLabelConfig(key.Label, textSize, key.NeedBalloon(), key.ColorBalloon(), width, height)
	}

	loc := image.Point{
		X: origin.X + key.Left - (b.Width()-key.Width())/2,
		Y: origin.Y + key.Top - b.Height(),
	}
	showBalloon(b, loc, movePress)
}

// dismissOnKey 隐藏按键高亮气泡
func (f *KeyFeedback) dismissOnKey(delay time.Duration) {
	if f.onKey != nil {
		f.onKey.DelayedDismiss(delay)
	}
}

// dismissPopup 隐藏弹出预览气泡
func (f *KeyFeedback) dismissPopup(delay time.Duration) {
	if f.popup != nil {
		f.popup.DelayedDismiss(delay)
	}
}

// showBalloon 请求显示气泡
//
// 普通按下使用 TimeDelayShow，滑动触发的按下立即显示。
// 配置变化过大的气泡先立即隐藏再重新显示，已显示的气泡原地更新。
func showBalloon(b Balloon, loc image.Point, movePress bool) {
	delay := TimeDelayShow
	if movePress {
		delay = 0
	}
	if b.NeedForceDismiss() {
		b.DelayedDismiss(0)
	}
	if !b.IsShowing() {
		b.DelayedShow(delay, loc)
	} else {
		b.DelayedUpdate(delay, loc, b.Width(), b.Height())
	}
}
