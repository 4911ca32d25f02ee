package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// SkbLayoutConfig 软键盘布局配置
// 从 YAML 文件加载，由 entities.NewSoftKeyboard 转换为可用的布局
type SkbLayoutConfig struct {
	ID         int     `yaml:"id"`         // 软键盘 ID
	Name       string  `yaml:"name"`       // 布局名称，如 "qwerty"
	Width      float64 `yaml:"width"`      // 设计宽度（像素）
	Height     float64 `yaml:"height"`     // 设计高度（像素）
	KeyXMargin int     `yaml:"keyXMargin"` // 按键水平边距
	KeyYMargin int     `yaml:"keyYMargin"` // 按键垂直边距

	Background        *BackgroundConfig `yaml:"background"`        // 键盘背景
	BalloonBackground *BackgroundConfig `yaml:"balloonBackground"` // 弹出气泡背景

	KeyTypes []KeyTypeConfig `yaml:"keyTypes"` // 按键类型
	Rows     []RowConfig     `yaml:"rows"`     // 按键行
}

// BackgroundConfig 背景配置
type BackgroundConfig struct {
	Fill   string  `yaml:"fill"`   // 填充颜色 "#rrggbb" 或 "#rrggbbaa"
	Border string  `yaml:"border"` // 边框颜色（可选）
	Radius float32 `yaml:"radius"` // 圆角半径
}

// KeyTypeConfig 按键类型配置
type KeyTypeConfig struct {
	ID           int               `yaml:"id"`
	Name         string            `yaml:"name"`
	Bg           *BackgroundConfig `yaml:"bg"`
	HlBg         *BackgroundConfig `yaml:"hlBg"`
	Color        string            `yaml:"color"`
	ColorHl      string            `yaml:"colorHl"`
	ColorBalloon string            `yaml:"colorBalloon"`
}

// RowConfig 一行按键
type RowConfig struct {
	Keys []KeyConfig `yaml:"keys"`
}

// KeyConfig 单个按键
type KeyConfig struct {
	Code    string  `yaml:"code"`    // 按键名称：单个字符或 SHIFT/DELETE/ENTER/SPACE/SYMBOL/ABC
	Label   string  `yaml:"label"`   // 显示文字，为空时单字符按键使用 Code
	Width   float64 `yaml:"width"`   // 宽度倍数，默认 1.0
	Type    int     `yaml:"type"`    // 按键类型 ID，默认 0（普通键）
	Repeat  bool    `yaml:"repeat"`  // 长按重复
	Balloon bool    `yaml:"balloon"` // 按下显示气泡
	Popup   int     `yaml:"popup"`   // 长按弹出软键盘 ID
}

// LoadSkbLayoutConfig 从 YAML 文件加载软键盘布局
//
// 参数：
//   - filepath: 布局文件路径
//
// 返回：
//   - *SkbLayoutConfig: 解析并校验后的布局配置
//   - error: 读取、解析或校验失败
func LoadSkbLayoutConfig(filepath string) (*SkbLayoutConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read skb layout file %s: %w", filepath, err)
	}

	cfg, err := ParseSkbLayoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skb layout %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseSkbLayoutConfig 解析 YAML 数据并校验
func ParseSkbLayoutConfig(data []byte) (*SkbLayoutConfig, error) {
	var cfg SkbLayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skb layout: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验布局配置
func (c *SkbLayoutConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid skb size %.0fx%.0f", c.Width, c.Height)
	}
	if len(c.Rows) == 0 {
		return fmt.Errorf("skb layout %q has no rows", c.Name)
	}
	if c.KeyXMargin < 0 || c.KeyYMargin < 0 {
		return fmt.Errorf("negative key margin (%d, %d)", c.KeyXMargin, c.KeyYMargin)
	}

	types := make(map[int]bool, len(c.KeyTypes))
	for _, kt := range c.KeyTypes {
		types[kt.ID] = true
	}

	for rowIdx, row := range c.Rows {
		if len(row.Keys) == 0 {
			return fmt.Errorf("row %d has no keys", rowIdx)
		}
		for keyIdx, key := range row.Keys {
			if key.Code == "" {
				return fmt.Errorf("row %d key %d has empty code", rowIdx, keyIdx)
			}
			if key.Width < 0 {
				return fmt.Errorf("row %d key %q has negative width", rowIdx, key.Code)
			}
			if len(c.KeyTypes) > 0 && !types[key.Type] {
				return fmt.Errorf("row %d key %q references unknown key type %d", rowIdx, key.Code, key.Type)
			}
		}
	}
	return nil
}

// WidthFactor 返回按键宽度倍数（未设置时为 1.0）
func (k KeyConfig) WidthFactor() float64 {
	if k.Width <= 0 {
		return 1.0
	}
	return k.Width
}

// ParseColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
// 空字符串返回完全透明
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, nil
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	// image/color 使用预乘 alpha
	return color.RGBA{
		R: uint8(uint16(r) * uint16(alpha) / 255),
		G: uint8(uint16(g) * uint16(alpha) / 255),
		B: uint8(uint16(b) * uint16(alpha) / 255),
		A: alpha,
	}, nil
}
