package config

// 窗口与逻辑屏幕尺寸
// 软键盘按屏幕宽度铺满，文字大小按屏幕高度计算
const (
	GameWindowWidth  = 800
	GameWindowHeight = 480
)
