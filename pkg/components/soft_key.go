package components

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// 按键类型 ID
// 0 为普通按键（字母/数字），其余均视为功能键（Shift、删除、回车等）
const (
	KeyTypeIDNormal   = 0
	KeyTypeIDFunction = 1
)

// KeyBackground 按键背景
// Image 非空时按图片拉伸绘制，否则使用纯色填充 + 边框
type KeyBackground struct {
	Fill   color.RGBA    // 填充颜色
	Border color.RGBA    // 边框颜色（A=0 表示无边框）
	Radius float32       // 圆角半径
	Image  *ebiten.Image // 背景图片（可选）
}

// SoftKeyType 按键类型
// 同一类型的按键共享背景和文字颜色
type SoftKeyType struct {
	ID           int
	Bg           *KeyBackground // 普通背景
	HlBg         *KeyBackground // 高亮（按下）背景
	Color        color.RGBA     // 普通文字颜色
	ColorHl      color.RGBA     // 高亮文字颜色
	ColorBalloon color.RGBA     // 气泡文字颜色
}

// SoftKey 软键盘上的单个按键
//
// 按键由布局拥有，边界在布局改变尺寸时重新计算。
// 边界判定：左/上边界包含，右/下边界不包含。
type SoftKey struct {
	Left, Top, Right, Bottom int

	KeyType *SoftKeyType
	KeyCode int    // 按键码（见 keycode.go）
	Label   string // 显示文字

	Icon      *ebiten.Image // 按键图标（优先于文字）
	IconPopup *ebiten.Image // 气泡中显示的图标

	PopupSkbID int  // 长按弹出的软键盘 ID，>0 表示支持长按弹出
	Repeat     bool // 长按是否重复触发
	Balloon    bool // 按下时是否显示气泡

	// 设计尺寸下的边界，用于 SetSkbCoreSize 按比例缩放
	designLeft, designTop, designRight, designBottom float64
}

// Width 按键宽度
func (k *SoftKey) Width() int {
	return k.Right - k.Left
}

// Height 按键高度
func (k *SoftKey) Height() int {
	return k.Bottom - k.Top
}

// Bounds 按键边界矩形
func (k *SoftKey) Bounds() image.Rectangle {
	return image.Rect(k.Left, k.Top, k.Right, k.Bottom)
}

// MoveWithinKey 判断点 (x, y) 是否仍在按键内
// 与 SoftKeyboard.MapToKey 使用相同的边界规则
func (k *SoftKey) MoveWithinKey(x, y int) bool {
	return x >= k.Left && x < k.Right && y >= k.Top && y < k.Bottom
}

// Repeatable 长按是否重复触发
func (k *SoftKey) Repeatable() bool {
	return k.Repeat
}

// NeedBalloon 按下时是否需要弹出气泡
func (k *SoftKey) NeedBalloon() bool {
	return k.Balloon
}

// SupportsLongPressPopup 是否支持长按弹出软键盘
func (k *SoftKey) SupportsLongPressPopup() bool {
	return k.PopupSkbID > 0
}

// IsFunctionKey 是否为功能键
func (k *SoftKey) IsFunctionKey() bool {
	return k.KeyType != nil && k.KeyType.ID != KeyTypeIDNormal
}

// KeyBg 普通背景
func (k *SoftKey) KeyBg() *KeyBackground {
	if k.KeyType == nil {
		return nil
	}
	return k.KeyType.Bg
}

// KeyHlBg 高亮背景
func (k *SoftKey) KeyHlBg() *KeyBackground {
	if k.KeyType == nil {
		return nil
	}
	return k.KeyType.HlBg
}

// Color 普通文字颜色
func (k *SoftKey) Color() color.RGBA {
	if k.KeyType == nil {
		return color.RGBA{A: 255}
	}
	return k.KeyType.Color
}

// ColorHl 高亮文字颜色
func (k *SoftKey) ColorHl() color.RGBA {
	if k.KeyType == nil {
		return color.RGBA{A: 255}
	}
	return k.KeyType.ColorHl
}

// ColorBalloon 气泡文字颜色
func (k *SoftKey) ColorBalloon() color.RGBA {
	if k.KeyType == nil {
		return color.RGBA{A: 255}
	}
	return k.KeyType.ColorBalloon
}

// SetDesignBounds 设置设计尺寸下的边界，并同步当前边界
func (k *SoftKey) SetDesignBounds(left, top, right, bottom float64) {
	k.designLeft, k.designTop, k.designRight, k.designBottom = left, top, right, bottom
	k.Left, k.Top, k.Right, k.Bottom = int(left), int(top), int(right), int(bottom)
}

// scale 按比例缩放到新尺寸
func (k *SoftKey) scale(sx, sy float64) {
	k.Left = int(k.designLeft * sx)
	k.Top = int(k.designTop * sy)
	k.Right = int(k.designRight * sx)
	k.Bottom = int(k.designBottom * sy)
}
