package game

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache 按字号缓存的标签字体
// 所有字号共享同一个字体源
type FontCache struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFontCache 使用内置 Go Regular 字体创建缓存
func NewFontCache() (*FontCache, error) {
	return NewFontCacheFromTTF(goregular.TTF)
}

// NewFontCacheFromTTF 使用指定的 TTF/OTF 数据创建缓存
func NewFontCacheFromTTF(data []byte) (*FontCache, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &FontCache{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// Face 获取指定字号的字体
// 字号按 0.5 取整，避免缩放时产生过多缓存项
func (fc *FontCache) Face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 1
	}
	size = math.Round(size*2) / 2

	if face, ok := fc.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    fc.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fc.faces[size] = face
	return face
}

// Len 已缓存的字号数量
func (fc *FontCache) Len() int {
	return len(fc.faces)
}
