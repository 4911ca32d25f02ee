package systems

import "github.com/decker502/softkeyboard/pkg/components"

// KeyboardLayout 坐标到按键的映射
// *components.SoftKeyboard 实现该接口
type KeyboardLayout interface {
	MapToKey(x, y int) *components.SoftKey
}

// KeyResolver 按键几何解析器
// 无副作用；布局为空时任何坐标都解析不到按键
type KeyResolver struct {
	Layout KeyboardLayout
}

// Resolve 返回包含 (x, y) 的按键，没有则返回 nil
//
// 返回的按键 K 一定满足 K.MoveWithinKey(x, y)。
func (r KeyResolver) Resolve(x, y int) *components.SoftKey {
	if r.Layout == nil {
		return nil
	}
	key := r.Layout.MapToKey(x, y)
	if key == nil || !key.MoveWithinKey(x, y) {
		return nil
	}
	return key
}
