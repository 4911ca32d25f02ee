package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SkbSettings 软键盘运行时设置
// 按键音与振动各自独立开关，在每次真实按下时读取
type SkbSettings struct {
	KeySound    bool    `yaml:"keySound"`    // 按键音开关
	Vibrate     bool    `yaml:"vibrate"`     // 按键振动开关
	SoundVolume float64 `yaml:"soundVolume"` // 按键音音量 0.0 ~ 1.0
}

// DefaultSettings 返回默认设置
func DefaultSettings() *SkbSettings {
	return &SkbSettings{
		KeySound:    true,
		Vibrate:     true,
		SoundVolume: 0.6,
	}
}

// SettingsManager 设置管理器
// 负责软键盘设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *SkbSettings   // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "skb"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方签名一致，加载失败只记录日志并使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 文件中缺失的字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *SkbSettings {
	return sm.settings
}

// KeySoundEnabled 按键音是否开启
func (sm *SettingsManager) KeySoundEnabled() bool {
	return sm.settings.KeySound
}

// VibrateEnabled 按键振动是否开启
func (sm *SettingsManager) VibrateEnabled() bool {
	return sm.settings.Vibrate
}

// SetKeySound 设置按键音开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetKeySound(enabled bool) {
	sm.settings.KeySound = enabled
}

// SetVibrate 设置振动开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetVibrate(enabled bool) {
	sm.settings.Vibrate = enabled
}

// SetSoundVolume 设置按键音音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
