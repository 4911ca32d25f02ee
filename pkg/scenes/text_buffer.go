package scenes

import "unicode/utf8"

// TextBuffer 软键盘的输入目标
//
// 以 rune 为单位保存当前行和光标位置，回车时把当前行提交到历史记录。
type TextBuffer struct {
	text      []rune
	cursor    int
	maxLength int // 0 表示不限制
	history   []string
}

// NewTextBuffer 创建输入缓冲区
func NewTextBuffer(maxLength int) *TextBuffer {
	return &TextBuffer{maxLength: maxLength}
}

// Insert 在光标处插入字符
// 达到最大长度或字符无效时返回 false
func (b *TextBuffer) Insert(r rune) bool {
	if r == utf8.RuneError || r < 0x20 {
		return false
	}
	if b.maxLength > 0 && len(b.text) >= b.maxLength {
		return false
	}

	// 先扩容再整体后移，避免与原切片共享底层数组
	b.text = append(b.text, 0)
	copy(b.text[b.cursor+1:], b.text[b.cursor:])
	b.text[b.cursor] = r
	b.cursor++
	return true
}

// DeleteBefore 删除光标前的一个字符
func (b *TextBuffer) DeleteBefore() bool {
	if b.cursor == 0 {
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

// MoveCursor 移动光标，结果限制在 [0, Len()]
func (b *TextBuffer) MoveCursor(delta int) {
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(b.text) {
		b.cursor = len(b.text)
	}
}

// Commit 提交当前行并清空
// 空行同样会被记录
func (b *TextBuffer) Commit() string {
	line := string(b.text)
	b.history = append(b.history, line)
	b.text = b.text[:0]
	b.cursor = 0
	return line
}

// Text 当前行
func (b *TextBuffer) Text() string {
	return string(b.text)
}

// Cursor 光标位置（rune 下标）
func (b *TextBuffer) Cursor() int {
	return b.cursor
}

// Len 当前行长度（rune 数）
func (b *TextBuffer) Len() int {
	return len(b.text)
}

// History 已提交的行
func (b *TextBuffer) History() []string {
	return b.history
}
