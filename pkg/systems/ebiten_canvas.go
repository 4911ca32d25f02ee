package systems

import (
	"image"
	"image/color"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas 基于 ebiten.Image 的 KeyCanvas 实现
//
// 目标可以是 SubImage，坐标原点为目标图像的左上角。
type EbitenCanvas struct {
	dst   *ebiten.Image
	fonts *game.FontCache

	dx, dy   int
	textSize float64
	color    color.RGBA
}

// NewEbitenCanvas 创建画布
// fonts 为 nil 时不绘制文字
func NewEbitenCanvas(dst *ebiten.Image, fonts *game.FontCache) *EbitenCanvas {
	return &EbitenCanvas{
		dst:      dst,
		fonts:    fonts,
		textSize: 16,
		color:    color.RGBA{A: 255},
	}
}

// Translate 累积平移
func (c *EbitenCanvas) Translate(dx, dy int) {
	c.dx += dx
	c.dy += dy
}

// toDst 画布坐标转换为目标图像坐标
func (c *EbitenCanvas) toDst(r image.Rectangle) image.Rectangle {
	return r.Add(c.dst.Bounds().Min).Add(image.Point{X: c.dx, Y: c.dy})
}

// DrawBackground 绘制按键背景
// 有图片时拉伸绘制，否则填充颜色并描边
func (c *EbitenCanvas) DrawBackground(bg *components.KeyBackground, rect image.Rectangle) {
	if bg == nil || rect.Empty() {
		return
	}
	if bg.Image != nil {
		c.DrawIcon(bg.Image, rect)
		return
	}

	r := c.toDst(rect)
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	if bg.Fill.A > 0 {
		vector.DrawFilledRect(c.dst, x, y, w, h, bg.Fill, true)
	}
	if bg.Border.A > 0 {
		vector.StrokeRect(c.dst, x, y, w, h, 1, bg.Border, true)
	}
}

// DrawIcon 把图片缩放绘制到 rect
func (c *EbitenCanvas) DrawIcon(img *ebiten.Image, rect image.Rectangle) {
	if img == nil || rect.Empty() {
		return
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}

	r := c.toDst(rect)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx())/float64(iw), float64(r.Dy())/float64(ih))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
}

// SetTextSize 设置字号
func (c *EbitenCanvas) SetTextSize(size float64) {
	c.textSize = size
}

// SetColor 设置文字颜色
func (c *EbitenCanvas) SetColor(clr color.RGBA) {
	c.color = clr
}

func (c *EbitenCanvas) face() *text.GoTextFace {
	if c.fonts == nil {
		return nil
	}
	return c.fonts.Face(c.textSize)
}

// MeasureText 文字宽度
func (c *EbitenCanvas) MeasureText(s string) float64 {
	face := c.face()
	if face == nil {
		return 0
	}
	return text.Advance(s, face)
}

// FontMetrics 当前字号的度量
func (c *EbitenCanvas) FontMetrics() FontMetrics {
	face := c.face()
	if face == nil {
		return FontMetrics{}
	}
	m := face.Metrics()
	return FontMetrics{Top: -m.HAscent, Bottom: m.HDescent}
}

// DrawText 以 (x, y) 为左端基线绘制文字
func (c *EbitenCanvas) DrawText(s string, x, y float64) {
	face := c.face()
	if face == nil {
		return
	}
	origin := c.dst.Bounds().Min
	op := &text.DrawOptions{}
	// text/v2 以行顶部为原点
	op.GeoM.Translate(x+float64(origin.X+c.dx), y-face.Metrics().HAscent+float64(origin.Y+c.dy))
	op.ColorScale.ScaleWithColor(c.color)
	text.Draw(c.dst, s, face, op)
}

// FillRect 填充矩形
func (c *EbitenCanvas) FillRect(rect image.Rectangle, clr color.RGBA) {
	r := c.toDst(rect)
	vector.DrawFilledRect(c.dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, true)
}

// Size 画布尺寸
func (c *EbitenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}
