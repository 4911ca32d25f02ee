package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvironmentRatios 与屏幕高度相关的尺寸比例
// 所有文字大小和气泡扩展量都按屏幕高度乘以比例计算
type EnvironmentRatios struct {
	KeyHeight             float64 `yaml:"keyHeight"`             // 按键高度
	NormalKeyTextSize     float64 `yaml:"normalKeyTextSize"`     // 普通键文字
	FunctionKeyTextSize   float64 `yaml:"functionKeyTextSize"`   // 功能键文字
	NormalBalloonTextSize float64 `yaml:"normalBalloonTextSize"` // 普通键气泡文字
	FunctionBalloonText   float64 `yaml:"functionBalloonText"`   // 功能键气泡文字
	KeyBalloonWidthPlus   float64 `yaml:"keyBalloonWidthPlus"`   // 气泡宽度扩展
	KeyBalloonHeightPlus  float64 `yaml:"keyBalloonHeightPlus"`  // 气泡高度扩展
}

// DefaultEnvironmentRatios 默认比例
func DefaultEnvironmentRatios() EnvironmentRatios {
	return EnvironmentRatios{
		KeyHeight:             0.105,
		NormalKeyTextSize:     0.075,
		FunctionKeyTextSize:   0.055,
		NormalBalloonTextSize: 0.14,
		FunctionBalloonText:   0.085,
		KeyBalloonWidthPlus:   0.08,
		KeyBalloonHeightPlus:  0.07,
	}
}

// Environment 软键盘显示环境
//
// 提供与屏幕尺寸相关的文字大小和气泡尺寸。
// 屏幕尺寸变化时调用 OnScreenSizeChanged 重新计算。
type Environment struct {
	ratios EnvironmentRatios

	screenWidth  int
	screenHeight int

	keyHeight             int
	normalKeyTextSize     float64
	functionKeyTextSize   float64
	normalBalloonTextSize float64
	functionBalloonTextSz float64
	keyBalloonWidthPlus   int
	keyBalloonHeightPlus  int
}

// NewEnvironment 使用指定比例创建环境
func NewEnvironment(ratios EnvironmentRatios, screenWidth, screenHeight int) *Environment {
	env := &Environment{ratios: ratios}
	env.OnScreenSizeChanged(screenWidth, screenHeight)
	return env
}

// LoadEnvironment 从 YAML 文件加载比例配置
//
// 文件中未设置的比例保留默认值。
func LoadEnvironment(filepath string, screenWidth, screenHeight int) (*Environment, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment file %s: %w", filepath, err)
	}
	return ParseEnvironment(data, screenWidth, screenHeight)
}

// ParseEnvironment 解析 YAML 比例配置
func ParseEnvironment(data []byte, screenWidth, screenHeight int) (*Environment, error) {
	ratios := DefaultEnvironmentRatios()
	if err := yaml.Unmarshal(data, &ratios); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment: %w", err)
	}
	return NewEnvironment(ratios, screenWidth, screenHeight), nil
}

// OnScreenSizeChanged 屏幕尺寸变化时重新计算所有尺寸
func (e *Environment) OnScreenSizeChanged(screenWidth, screenHeight int) {
	if screenWidth == e.screenWidth && screenHeight == e.screenHeight {
		return
	}
	e.screenWidth = screenWidth
	e.screenHeight = screenHeight

	h := float64(screenHeight)
	e.keyHeight = int(h * e.ratios.KeyHeight)
	e.normalKeyTextSize = h * e.ratios.NormalKeyTextSize
	e.functionKeyTextSize = h * e.ratios.FunctionKeyTextSize
	e.normalBalloonTextSize = h * e.ratios.NormalBalloonTextSize
	e.functionBalloonTextSz = h * e.ratios.FunctionBalloonText
	e.keyBalloonWidthPlus = int(h * e.ratios.KeyBalloonWidthPlus)
	e.keyBalloonHeightPlus = int(h * e.ratios.KeyBalloonHeightPlus)

	log.Printf("[Environment] Screen %dx%d, key text %.1f/%.1f, balloon plus %dx%d",
		screenWidth, screenHeight, e.normalKeyTextSize, e.functionKeyTextSize,
		e.keyBalloonWidthPlus, e.keyBalloonHeightPlus)
}

// KeyHeight 推荐的按键高度
func (e *Environment) KeyHeight() int {
	return e.keyHeight
}

// KeyTextSize 按键文字大小
func (e *Environment) KeyTextSize(isFunctionKey bool) float64 {
	if isFunctionKey {
		return e.functionKeyTextSize
	}
	return e.normalKeyTextSize
}

// BalloonTextSize 气泡文字大小
func (e *Environment) BalloonTextSize(isFunctionKey bool) float64 {
	if isFunctionKey {
		return e.functionBalloonTextSz
	}
	return e.normalBalloonTextSize
}

// KeyBalloonWidthPlus 弹出气泡相对按键的宽度扩展
func (e *Environment) KeyBalloonWidthPlus() int {
	return e.keyBalloonWidthPlus
}

// KeyBalloonHeightPlus 弹出气泡相对按键的高度扩展
func (e *Environment) KeyBalloonHeightPlus() int {
	return e.keyBalloonHeightPlus
}
