package systems

import (
	"image"
	"log"
	"time"

	"github.com/decker502/softkeyboard/pkg/components"
)

// PressTimer 长按计时器
// 同一时刻最多只有一个待触发的计时，重复 Start 会先取消之前的计时
type PressTimer interface {
	StartTimer()
	RemoveTimer()
}

// Padding 视图内边距
type Padding struct {
	Left, Top, Right, Bottom int
}

// SoftKeyboardView 软键盘视图
//
// 把宿主传入的原始坐标解析为按键，跟踪唯一的按下按键，驱动高亮、气泡、按键音和振动。
// 视图本身不消费输入事件，解析出的按键交还给宿主处理提交和手势修正。
//
// 所有方法都在 UI 线程上同步调用。
type SoftKeyboardView struct {
	skb      *components.SoftKeyboard
	resolver KeyResolver
	feedback *KeyFeedback
	host     Invalidator

	keyDown    *components.SoftKey // 当前按下的按键，nil 表示空闲
	keyPressed bool                // 是否正按住 keyDown
	timer      PressTimer

	dim   bool
	dirty DirtyRegion

	offsetToContainer image.Point
	padding           Padding

	repeatForLongPress   bool // 滑动到其他按键后是否重新开始长按计时
	movingNeverHidePopup bool // 滑动时不隐藏弹出气泡
}

// NewSoftKeyboardView 创建软键盘视图
//
// 参数：
//   - feedback: 反馈分发器，不能为 nil
//   - host: 接收重绘请求的宿主，可为 nil
func NewSoftKeyboardView(feedback *KeyFeedback, host Invalidator) *SoftKeyboardView {
	return &SoftKeyboardView{
		feedback: feedback,
		host:     host,
	}
}

// SetSoftKeyboard 设置当前布局，nil 被拒绝
func (v *SoftKeyboardView) SetSoftKeyboard(skb *components.SoftKeyboard) bool {
	if skb == nil {
		return false
	}
	v.skb = skb
	v.resolver = KeyResolver{Layout: skb}
	// 旧布局的按键引用不再有效
	v.keyDown = nil
	v.keyPressed = false
	v.invalidateAll()
	return true
}

// SoftKeyboard 当前布局
func (v *SoftKeyboardView) SoftKeyboard() *components.SoftKeyboard {
	return v.skb
}

// ResizeKeyboard 调整布局核心尺寸
func (v *SoftKeyboardView) ResizeKeyboard(width, height int) {
	if v.skb == nil {
		return
	}
	v.skb.SetSkbCoreSize(width, height)
	v.invalidateAll()
}

// SetBalloonHint 设置气泡
//
// onKey 为 nil 时按键高亮直接绘制在键盘上。
//
// movingNeverHidePopup 只在 SetRepeatForLongPress(true) 时生效：
// 两者都开启时，滑动到其他按键不先隐藏气泡，在同一按键内滑动也会重新显示气泡并重新计时；
// 只开启 movingNeverHidePopup 时与两者都关闭的行为相同。
// 移出所有按键时任何组合都会隐藏气泡。
func (v *SoftKeyboardView) SetBalloonHint(onKey, popup Balloon, movingNeverHidePopup bool) {
	v.feedback.setBalloons(onKey, popup)
	v.movingNeverHidePopup = movingNeverHidePopup
}

// SetOffsetToSkbContainer 视图在容器中的偏移，用于计算气泡位置
func (v *SoftKeyboardView) SetOffsetToSkbContainer(offset image.Point) {
	v.offsetToContainer = offset
}

// SetPadding 设置内边距
func (v *SoftKeyboardView) SetPadding(left, top, right, bottom int) {
	v.padding = Padding{Left: left, Top: top, Right: right, Bottom: bottom}
}

// SetRepeatForLongPress 设置滑动后是否重新开始长按计时，默认关闭
func (v *SoftKeyboardView) SetRepeatForLongPress(repeat bool) {
	v.repeatForLongPress = repeat
}

// OnKeyPress 处理按下
//
// 返回按下的按键，坐标不在任何按键内时返回 nil 且不产生任何反馈。
func (v *SoftKeyboardView) OnKeyPress(x, y int, timer PressTimer) *components.SoftKey {
	v.timer = timer
	return v.press(x, y, false)
}

// OnKeyMove 处理按住后的移动
//
// 仍在当前按键内时不发生任何变化；移动到其他按键时先撤销旧按键的反馈，
// 再以“滑动按下”进入新按键（不播放声音和振动，气泡立即显示）。
// 移出所有按键时回到空闲并返回 nil。
// 同时开启长按重复和滑动不隐藏气泡时的差异见 SetBalloonHint。
func (v *SoftKeyboardView) OnKeyMove(x, y int) *components.SoftKey {
	if v.keyDown == nil {
		return nil
	}

	neverHide := v.repeatForLongPress && v.movingNeverHidePopup
	if v.keyDown.MoveWithinKey(v.toKeySpace(x, y)) {
		if neverHide {
			return v.pressKey(v.keyDown, true)
		}
		return v.keyDown
	}

	old := v.keyDown
	v.dirty.Union(old.Bounds())

	// 移出所有按键时即使不隐藏气泡也要撤销旧按键的反馈
	if neverHide {
		if key := v.resolveAt(x, y); key != nil {
			return v.pressKey(key, true)
		}
	}

	if v.feedback.HasOnKeyBalloon() {
		v.feedback.dismissOnKey(0)
	} else {
		v.invalidateDirty()
	}
	if old.NeedBalloon() {
		v.feedback.dismissPopup(0)
	}
	v.removeTimer()

	return v.press(x, y, true)
}

// OnKeyRelease 处理释放
//
// 释放点仍在按下的按键内时返回该按键，否则返回 nil（在按键外释放）。
// 无论哪种情况都取消长按计时并以 TimeDelayDismiss 隐藏气泡。
func (v *SoftKeyboardView) OnKeyRelease(x, y int) *components.SoftKey {
	v.keyPressed = false
	key := v.keyDown
	if key == nil {
		return nil
	}
	v.keyDown = nil

	v.removeTimer()

	if v.feedback.HasOnKeyBalloon() {
		v.feedback.dismissOnKey(TimeDelayDismiss)
	} else {
		v.dirty.Union(key.Bounds())
		v.invalidateDirty()
	}

	if key.NeedBalloon() {
		v.feedback.dismissPopup(TimeDelayDismiss)
	}

	if key.MoveWithinKey(v.toKeySpace(x, y)) {
		return key
	}
	return nil
}

// ResetKeyPress 在没有坐标的情况下撤销当前按键的反馈（如失去焦点）
// 没有按住任何按键时什么也不做
func (v *SoftKeyboardView) ResetKeyPress(delay time.Duration) {
	if !v.keyPressed {
		return
	}
	v.keyPressed = false

	if v.feedback.HasOnKeyBalloon() {
		v.feedback.dismissOnKey(delay)
	} else if v.keyDown != nil {
		v.dirty.SetIfEmpty(v.keyDown.Bounds())
		v.invalidateDirty()
	} else {
		v.invalidateAll()
	}
	v.feedback.dismissPopup(delay)

	// 不会再收到释放事件，直接回到空闲
	v.removeTimer()
	v.keyDown = nil
}

// DimSoftKeyboard 设置键盘变暗
func (v *SoftKeyboardView) DimSoftKeyboard(dim bool) {
	v.dim = dim
	v.invalidateAll()
}

// IsDimmed 键盘是否变暗
func (v *SoftKeyboardView) IsDimmed() bool {
	return v.dim
}

// Measure 视图尺寸：布局核心尺寸加内边距，没有布局时为 0
func (v *SoftKeyboardView) Measure() (int, int) {
	if v.skb == nil {
		return 0, 0
	}
	w := v.skb.SkbCoreWidth() + v.padding.Left + v.padding.Right
	h := v.skb.SkbCoreHeight() + v.padding.Top + v.padding.Bottom
	return w, h
}

// KeyDown 当前按下的按键
func (v *SoftKeyboardView) KeyDown() *components.SoftKey {
	return v.keyDown
}

// IsKeyPressed 是否正按住按键
func (v *SoftKeyboardView) IsKeyPressed() bool {
	return v.keyPressed
}

// DirtyRect 当前脏矩形（按键坐标）
func (v *SoftKeyboardView) DirtyRect() image.Rectangle {
	return v.dirty.Rect()
}

// press 按下与滑动按下的公共路径
func (v *SoftKeyboardView) press(x, y int, movePress bool) *components.SoftKey {
	key := v.resolveAt(x, y)

	if movePress && key != nil && key == v.keyDown {
		return key
	}
	if key == nil {
		v.keyDown = nil
		v.keyPressed = false
		return nil
	}
	return v.pressKey(key, movePress)
}

// pressKey 让 key 成为按下的按键并产生反馈
// key 与当前按下的按键相同时重新显示气泡并重新计时
func (v *SoftKeyboardView) pressKey(key *components.SoftKey, movePress bool) *components.SoftKey {
	v.keyDown = key
	v.keyPressed = true

	if !movePress {
		v.feedback.keyDown()
		if key.SupportsLongPressPopup() || key.Repeatable() {
			v.startTimer()
		}
	} else {
		v.removeTimer()
	}

	origin := v.origin()
	if v.feedback.HasOnKeyBalloon() {
		xMargin, yMargin := v.skb.Margins()
		v.feedback.showOnKeyBalloon(key, xMargin, yMargin, origin, movePress)
	} else {
		v.dirty.Union(key.Bounds())
		v.invalidateDirty()
	}

	if key.NeedBalloon() && v.feedback.popup != nil {
		v.feedback.showPopupBalloon(key, v.skb.BalloonBackground(), origin, movePress)
	} else {
		v.feedback.dismissPopup(0)
	}

	if v.repeatForLongPress {
		v.startTimer()
	}

	log.Printf("[SoftKeyboardView] Key down: code=%d label=%q move=%v", key.KeyCode, key.Label, movePress)
	return key
}

// resolveAt 视图坐标处的按键
func (v *SoftKeyboardView) resolveAt(x, y int) *components.SoftKey {
	return v.resolver.Resolve(v.toKeySpace(x, y))
}

// toKeySpace 视图坐标转换为按键坐标
func (v *SoftKeyboardView) toKeySpace(x, y int) (int, int) {
	return x - v.padding.Left, y - v.padding.Top
}

// origin 按键坐标原点在容器中的位置
func (v *SoftKeyboardView) origin() image.Point {
	return image.Point{
		X: v.padding.Left + v.offsetToContainer.X,
		Y: v.padding.Top + v.offsetToContainer.Y,
	}
}

func (v *SoftKeyboardView) startTimer() {
	if v.timer != nil {
		v.timer.StartTimer()
	}
}

func (v *SoftKeyboardView) removeTimer() {
	if v.timer != nil {
		v.timer.RemoveTimer()
	}
}

// invalidateDirty 请求重绘脏区域
func (v *SoftKeyboardView) invalidateDirty() {
	if v.host == nil || v.dirty.IsEmpty() {
		return
	}
	v.host.Invalidate(v.dirty.Rect().Add(image.Point{X: v.padding.Left, Y: v.padding.Top}))
}

func (v *SoftKeyboardView) invalidateAll() {
	if v.host != nil {
		v.host.InvalidateAll()
	}
}
