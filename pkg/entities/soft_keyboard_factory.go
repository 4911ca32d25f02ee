package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/softkeyboard/pkg/components"
	"github.com/decker502/softkeyboard/pkg/config"
	"github.com/decker502/softkeyboard/pkg/embedded"
)

// NewSoftKeyboard 根据布局配置创建软键盘
//
// 按键布局规则：
//   - 每行高度 = 设计高度 / 行数
//   - 单位宽度 = 设计宽度 / 最宽一行的宽度倍数之和
//   - 按键之间没有间隙（间隙由绘制时的 KeyXMargin/KeyYMargin 体现），
//     这样行内任意点都能映射到某个按键
//   - 较窄的行水平居中
//
// 参数：
//   - cfg: 已校验的布局配置
//
// 返回：
//   - *components.SoftKeyboard: 软键盘布局
//   - error: 颜色解析失败
func NewSoftKeyboard(cfg *config.SkbLayoutConfig) (*components.SoftKeyboard, error) {
	skb := components.NewSoftKeyboard(cfg.ID, cfg.Name, cfg.Width, cfg.Height)
	skb.KeyXMargin = cfg.KeyXMargin
	skb.KeyYMargin = cfg.KeyYMargin

	var err error
	if skb.SkbBg, err = newKeyBackground(cfg.Background); err != nil {
		return nil, fmt.Errorf("skb %q background: %w", cfg.Name, err)
	}
	if skb.BalloonBg, err = newKeyBackground(cfg.BalloonBackground); err != nil {
		return nil, fmt.Errorf("skb %q balloon background: %w", cfg.Name, err)
	}

	keyTypes, err := newKeyTypes(cfg.KeyTypes)
	if err != nil {
		return nil, fmt.Errorf("skb %q: %w", cfg.Name, err)
	}

	// 计算最宽一行的宽度倍数之和
	maxUnits := 0.0
	for _, row := range cfg.Rows {
		units := 0.0
		for _, key := range row.Keys {
			units += key.WidthFactor()
		}
		if units > maxUnits {
			maxUnits = units
		}
	}
	unitWidth := cfg.Width / maxUnits
	rowHeight := cfg.Height / float64(len(cfg.Rows))

	for rowIdx, row := range cfg.Rows {
		top := float64(rowIdx) * rowHeight
		bottom := top + rowHeight

		units := 0.0
		for _, key := range row.Keys {
			units += key.WidthFactor()
		}
		x := (cfg.Width - units*unitWidth) / 2

		keyRow := &components.KeyRow{
			RowID:    rowIdx,
			SoftKeys: make([]*components.SoftKey, 0, len(row.Keys)),
			Top:      int(top),
			Bottom:   int(bottom),
		}

		for _, keyCfg := range row.Keys {
			width := keyCfg.WidthFactor() * unitWidth
			key := &components.SoftKey{
				KeyType:    keyTypes[keyCfg.Type],
				KeyCode:    components.ParseKeyCode(keyCfg.Code),
				Label:      keyLabel(keyCfg),
				PopupSkbID: keyCfg.Popup,
				Repeat:     keyCfg.Repeat,
				Balloon:    keyCfg.Balloon,
			}
			key.SetDesignBounds(x, top, x+width, bottom)
			keyRow.SoftKeys = append(keyRow.SoftKeys, key)
			x += width
		}

		skb.AddRow(keyRow)
	}

	log.Printf("[SoftKeyboardFactory] Created skb %q (id=%d, rows=%d, keys=%d)",
		cfg.Name, cfg.ID, skb.RowNum(), len(skb.AllKeys()))
	return skb, nil
}

// LoadSoftKeyboard 从嵌入资源加载布局并创建软键盘
//
// 参数：
//   - path: 嵌入资源路径，如 "data/skb/qwerty.yaml"
func LoadSoftKeyboard(path string) (*components.SoftKeyboard, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skb layout %s: %w", path, err)
	}
	cfg, err := config.ParseSkbLayoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skb layout %s: %w", path, err)
	}
	return NewSoftKeyboard(cfg)
}

// keyLabel 未设置标签的单字符按键使用按键名称作为标签
func keyLabel(keyCfg config.KeyConfig) string {
	if keyCfg.Label != "" {
		return keyCfg.Label
	}
	if len([]rune(keyCfg.Code)) == 1 {
		return keyCfg.Code
	}
	return ""
}

// newKeyTypes 转换按键类型配置
// 未配置任何类型时提供一个默认普通类型
func newKeyTypes(cfgs []config.KeyTypeConfig) (map[int]*components.SoftKeyType, error) {
	types := make(map[int]*components.SoftKeyType, len(cfgs))
	if len(cfgs) == 0 {
		types[components.KeyTypeIDNormal] = defaultKeyType()
		return types, nil
	}

	for _, c := range cfgs {
		kt := &components.SoftKeyType{ID: c.ID}
		var err error
		if kt.Bg, err = newKeyBackground(c.Bg); err != nil {
			return nil, fmt.Errorf("key type %d bg: %w", c.ID, err)
		}
		if kt.HlBg, err = newKeyBackground(c.HlBg); err != nil {
			return nil, fmt.Errorf("key type %d hlBg: %w", c.ID, err)
		}
		if kt.Color, err = config.ParseColor(c.Color); err != nil {
			return nil, fmt.Errorf("key type %d color: %w", c.ID, err)
		}
		if kt.ColorHl, err = config.ParseColor(c.ColorHl); err != nil {
			return nil, fmt.Errorf("key type %d colorHl: %w", c.ID, err)
		}
		if kt.ColorBalloon, err = config.ParseColor(c.ColorBalloon); err != nil {
			return nil, fmt.Errorf("key type %d colorBalloon: %w", c.ID, err)
		}
		types[c.ID] = kt
	}
	return types, nil
}

func newKeyBackground(c *config.BackgroundConfig) (*components.KeyBackground, error) {
	if c == nil {
		return nil, nil
	}
	fill, err := config.ParseColor(c.Fill)
	if err != nil {
		return nil, err
	}
	border, err := config.ParseColor(c.Border)
	if err != nil {
		return nil, err
	}
	return &components.KeyBackground{Fill: fill, Border: border, Radius: c.Radius}, nil
}

func defaultKeyType() *components.SoftKeyType {
	return &components.SoftKeyType{
		ID:           components.KeyTypeIDNormal,
		Bg:           &components.KeyBackground{Fill: color.RGBA{R: 70, G: 70, B: 80, A: 255}, Border: color.RGBA{R: 100, G: 100, B: 110, A: 255}},
		HlBg:         &components.KeyBackground{Fill: color.RGBA{R: 40, G: 40, B: 50, A: 255}, Border: color.RGBA{R: 100, G: 100, B: 110, A: 255}},
		Color:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		ColorHl:      color.RGBA{R: 255, G: 208, B: 96, A: 255},
		ColorBalloon: color.RGBA{R: 32, G: 32, B: 32, A: 255},
	}
}
