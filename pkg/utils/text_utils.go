package utils

import (
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度折行
//
// 按字符逐个测量，超出 maxWidth 时在该字符前断行；单个字符超宽时独占一行。
// 空格原样保留，拼接所有行即得到原文本，便于按 rune 下标定位光标。
// 支持中文和英文混合文本。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	lineStart := 0
	for i := 0; i < len(textStr); {
		_, size := utf8.DecodeRuneInString(textStr[i:])
		if measureTextWidth(textStr[lineStart:i+size], font) > maxWidth && i > lineStart {
			lines = append(lines, textStr[lineStart:i])
			lineStart = i
		}
		i += size
	}
	return append(lines, textStr[lineStart:])
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
