// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerPress 按下
	PointerPress PointerEventKind = iota
	// PointerMove 按住移动
	PointerMove
	// PointerRelease 释放
	PointerRelease
)

// String 便于日志输出
func (k PointerEventKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent 单个指针事件（屏幕坐标）
type PointerEvent struct {
	Kind PointerEventKind
	X, Y int
}

// PointerSample 一帧的原始指针采样
type PointerSample struct {
	// Pressed 被跟踪的指针是否处于按下状态
	Pressed bool
	// JustPressed 本帧是否有新的按下（开始跟踪新指针）
	JustPressed bool
	// X, Y 当前位置；释放时为最后已知位置
	X, Y int
	// TouchID 触摸 ID，鼠标为 -1
	TouchID ebiten.TouchID
}

// PointerTracker 单指针跟踪器
//
// 同一时刻只跟踪一个指针（第一个按下的触摸点或鼠标左键），
// 把每帧的原始状态转换为按下/移动/释放事件。
// 触摸优先于鼠标。
type PointerTracker struct {
	active  bool
	touchID ebiten.TouchID
	isTouch bool
	lastX   int
	lastY   int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Poll 从 ebiten 读取当前帧输入并返回事件
// 必须在 Update 中每帧调用一次
func (pt *PointerTracker) Poll() []PointerEvent {
	return pt.Feed(pt.sample())
}

// sample 采样当前帧的指针状态
func (pt *PointerTracker) sample() PointerSample {
	if !pt.active {
		// 优先检测触摸输入
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			x, y := ebiten.TouchPosition(ids[0])
			return PointerSample{Pressed: true, JustPressed: true, X: x, Y: y, TouchID: ids[0]}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			return PointerSample{Pressed: true, JustPressed: true, X: x, Y: y, TouchID: -1}
		}
		return PointerSample{TouchID: -1}
	}

	if pt.isTouch {
		if inpututil.IsTouchJustReleased(pt.touchID) {
			return PointerSample{Pressed: false, X: pt.lastX, Y: pt.lastY, TouchID: pt.touchID}
		}
		x, y := ebiten.TouchPosition(pt.touchID)
		return PointerSample{Pressed: true, X: x, Y: y, TouchID: pt.touchID}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), X: x, Y: y, TouchID: -1}
}

// Feed 处理一帧采样并生成事件
//
// 规则：
//   - 未跟踪时，JustPressed 开始跟踪并产生 PointerPress
//   - 跟踪中位置变化产生 PointerMove
//   - 跟踪中 Pressed 变为 false 产生 PointerRelease 并停止跟踪
func (pt *PointerTracker) Feed(s PointerSample) []PointerEvent {
	if !pt.active {
		if !s.JustPressed {
			return nil
		}
		pt.active = true
		pt.touchID = s.TouchID
		pt.isTouch = s.TouchID >= 0
		pt.lastX, pt.lastY = s.X, s.Y
		return []PointerEvent{{Kind: PointerPress, X: s.X, Y: s.Y}}
	}

	if !s.Pressed {
		pt.lastX, pt.lastY = s.X, s.Y
		pt.Reset()
		return []PointerEvent{{Kind: PointerRelease, X: s.X, Y: s.Y}}
	}

	if s.X == pt.lastX && s.Y == pt.lastY {
		return nil
	}
	pt.lastX, pt.lastY = s.X, s.Y
	return []PointerEvent{{Kind: PointerMove, X: s.X, Y: s.Y}}
}

// Reset 停止跟踪当前指针（不产生事件）
func (pt *PointerTracker) Reset() {
	pt.active = false
	pt.touchID = -1
	pt.isTouch = false
}

// IsTracking 是否正在跟踪指针
func (pt *PointerTracker) IsTracking() bool {
	return pt.active
}

// Position 最后已知位置
func (pt *PointerTracker) Position() (int, int) {
	return pt.lastX, pt.lastY
}
