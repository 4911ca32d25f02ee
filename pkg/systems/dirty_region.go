package systems

import "image"

// Invalidator 接收重绘请求的宿主
// 坐标为视图坐标（含内边距）
type Invalidator interface {
	Invalidate(r image.Rectangle)
	InvalidateAll()
}

// DirtyRegion 需要重绘的最小矩形
//
// 覆盖自上次绘制以来视觉状态发生变化的所有按键，绘制完成后清空。
type DirtyRegion struct {
	rect image.Rectangle
}

// Union 合并矩形，空矩形被忽略
func (d *DirtyRegion) Union(r image.Rectangle) {
	if r.Empty() {
		return
	}
	if d.rect.Empty() {
		d.rect = r
		return
	}
	d.rect = d.rect.Union(r)
}

// SetIfEmpty 区域为空时设置为 r
func (d *DirtyRegion) SetIfEmpty(r image.Rectangle) {
	if d.rect.Empty() {
		d.rect = r
	}
}

// Rect 当前脏矩形
func (d *DirtyRegion) Rect() image.Rectangle {
	return d.rect
}

// IsEmpty 是否为空
func (d *DirtyRegion) IsEmpty() bool {
	return d.rect.Empty()
}

// Clear 清空
func (d *DirtyRegion) Clear() {
	d.rect = image.Rectangle{}
}
