package systems

import (
	"image"
	"image/color"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// DimColor 键盘变暗时覆盖的半透明遮罩（0xa0000000）
var DimColor = color.RGBA{R: 0, G: 0, B: 0, A: 0xa0}

// FontMetrics 字体度量，相对基线：Top 为负（基线以上），Bottom 为正
type FontMetrics struct {
	Top    float64
	Bottom float64
}

// KeyCanvas 绘制目标
// 坐标受 Translate 累积偏移影响
type KeyCanvas interface {
	Translate(dx, dy int)
	DrawBackground(bg *components.KeyBackground, rect image.Rectangle)
	DrawIcon(img *ebiten.Image, rect image.Rectangle)
	SetTextSize(size float64)
	SetColor(c color.RGBA)
	MeasureText(s string) float64
	FontMetrics() FontMetrics
	// DrawText 以 (x, y) 为左端基线绘制文字
	DrawText(s string, x, y float64)
	FillRect(rect image.Rectangle, c color.RGBA)
	Size() (int, int)
}

// Draw 全量绘制键盘
//
// 每次都重绘所有按键；脏区域只用于重绘请求，绘制完成后清空。
// 没有布局时什么也不画。
func (v *SoftKeyboardView) Draw(c KeyCanvas) {
	if v.skb == nil {
		return
	}

	env := v.feedback.Environment()
	normalTextSize := env.KeyTextSize(false)
	functionTextSize := env.KeyTextSize(true)
	xMargin, yMargin := v.skb.Margins()

	c.Translate(v.padding.Left, v.padding.Top)
	for row := 0; row < v.skb.RowNum(); row++ {
		keyRow := v.skb.KeyRowForDisplay(row)
		if keyRow == nil {
			continue
		}
		for _, key := range keyRow.SoftKeys {
			if key.IsFunctionKey() {
				c.SetTextSize(functionTextSize)
			} else {
				c.SetTextSize(normalTextSize)
			}
			v.drawSoftKey(c, key, xMargin, yMargin)
		}
	}
	c.Translate(-v.padding.Left, -v.padding.Top)

	if v.dim {
		w, h := c.Size()
		c.FillRect(image.Rect(0, 0, w, h), DimColor)
	}

	v.dirty.Clear()
}

// drawSoftKey 绘制单个按键：背景，然后图标（居中）或文字
func (v *SoftKeyboardView) drawSoftKey(c KeyCanvas, key *components.SoftKey, xMargin, yMargin int) {
	bg := key.KeyBg()
	textColor := key.Color()
	if v.keyPressed && key == v.keyDown {
		bg = key.KeyHlBg()
		textColor = key.ColorHl()
	}

	if bg != nil {
		c.DrawBackground(bg, image.Rect(key.Left+xMargin, key.Top+yMargin, key.Right-xMargin, key.Bottom-yMargin))
	}

	if key.Icon != nil {
		c.DrawIcon(key.Icon, iconRect(key, key.Icon.Bounds().Dx(), key.Icon.Bounds().Dy()))
		return
	}
	if key.Label == "" {
		return
	}

	c.SetColor(textColor)
	x := float64(key.Left) + (float64(key.Width())-c.MeasureText(key.Label))/2
	fm := c.FontMetrics()
	fontHeight := fm.Bottom - fm.Top
	marginY := (float64(key.Height()) - fontHeight) / 2
	y := float64(key.Top) + marginY - fm.Top + fm.Bottom/1.5
	c.DrawText(key.Label, x, y+1)
}

// iconRect 图标在按键中居中的位置
func iconRect(key *components.SoftKey, iconW, iconH int) image.Rectangle {
	marginLeft := (key.Width() - iconW) / 2
	marginTop := (key.Height() - iconH) / 2
	return image.Rect(key.Left+marginLeft, key.Top+marginTop, key.Left+marginLeft+iconW, key.Top+marginTop+iconH)
}
