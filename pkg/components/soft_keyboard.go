package components

// KeyRow 一行按键
type KeyRow struct {
	RowID    int
	SoftKeys []*SoftKey
	Top      int
	Bottom   int
}

// SoftKeyboard 软键盘布局
//
// 按行组织按键，提供坐标到按键的映射以及按键边距信息。
// 当活动布局切换时整体替换，视图只持有当前按下按键的引用。
type SoftKeyboard struct {
	SkbID int
	Name  string

	Rows []*KeyRow

	// 按键边界与实际绘制背景之间的边距
	KeyXMargin int
	KeyYMargin int

	SkbBg     *KeyBackground // 整个键盘背景
	BalloonBg *KeyBackground // 弹出气泡背景

	// 设计尺寸（布局文件中的坐标基准）
	designWidth  float64
	designHeight float64

	// 当前核心尺寸（不含视图内边距）
	coreWidth  int
	coreHeight int
}

// NewSoftKeyboard 创建空的软键盘布局
//
// 参数：
//   - designWidth/designHeight: 按键设计坐标所基于的尺寸
func NewSoftKeyboard(id int, name string, designWidth, designHeight float64) *SoftKeyboard {
	return &SoftKeyboard{
		SkbID:        id,
		Name:         name,
		designWidth:  designWidth,
		designHeight: designHeight,
		coreWidth:    int(designWidth),
		coreHeight:   int(designHeight),
	}
}

// AddRow 追加一行按键
func (skb *SoftKeyboard) AddRow(row *KeyRow) {
	skb.Rows = append(skb.Rows, row)
}

// RowNum 行数
func (skb *SoftKeyboard) RowNum() int {
	return len(skb.Rows)
}

// KeyRowForDisplay 返回用于绘制的第 row 行，越界返回 nil
func (skb *SoftKeyboard) KeyRowForDisplay(row int) *KeyRow {
	if row < 0 || row >= len(skb.Rows) {
		return nil
	}
	return skb.Rows[row]
}

// MapToKey 返回包含点 (x, y) 的按键，没有则返回 nil
//
// 边界规则与 SoftKey.MoveWithinKey 一致：左/上包含，右/下不包含。
// 相邻按键共享的边界因此只属于右侧（或下方）的按键。
func (skb *SoftKeyboard) MapToKey(x, y int) *SoftKey {
	for _, row := range skb.Rows {
		if row == nil {
			continue
		}
		for _, key := range row.SoftKeys {
			if key.MoveWithinKey(x, y) {
				return key
			}
		}
	}
	return nil
}

// Margins 按键的水平/垂直边距
func (skb *SoftKeyboard) Margins() (int, int) {
	return skb.KeyXMargin, skb.KeyYMargin
}

// BalloonBackground 弹出气泡背景
func (skb *SoftKeyboard) BalloonBackground() *KeyBackground {
	return skb.BalloonBg
}

// SkbCoreWidth 核心宽度
func (skb *SoftKeyboard) SkbCoreWidth() int {
	return skb.coreWidth
}

// SkbCoreHeight 核心高度
func (skb *SoftKeyboard) SkbCoreHeight() int {
	return skb.coreHeight
}

// DesignSize 布局文件中的设计尺寸
func (skb *SoftKeyboard) DesignSize() (float64, float64) {
	return skb.designWidth, skb.designHeight
}

// SetSkbCoreSize 调整核心尺寸，所有按键边界按比例重新计算
func (skb *SoftKeyboard) SetSkbCoreSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == skb.coreWidth && height == skb.coreHeight {
		return
	}
	skb.coreWidth = width
	skb.coreHeight = height

	sx, sy := 1.0, 1.0
	if skb.designWidth > 0 {
		sx = float64(width) / skb.designWidth
	}
	if skb.designHeight > 0 {
		sy = float64(height) / skb.designHeight
	}

	for _, row := range skb.Rows {
		if row == nil {
			continue
		}
		for _, key := range row.SoftKeys {
			key.scale(sx, sy)
		}
		if len(row.SoftKeys) > 0 {
			row.Top = row.SoftKeys[0].Top
			row.Bottom = row.SoftKeys[0].Bottom
		}
	}
}

// AllKeys 扁平化返回所有按键
func (skb *SoftKeyboard) AllKeys() []*SoftKey {
	var keys []*SoftKey
	for _, row := range skb.Rows {
		if row == nil {
			continue
		}
		keys = append(keys, row.SoftKeys...)
	}
	return keys
}
