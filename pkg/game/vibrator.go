package game

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/decker502/softkeyboard/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyVibratePattern 按键振动模式：等待 1ms，振动 20ms
var KeyVibratePattern = []time.Duration{1 * time.Millisecond, 20 * time.Millisecond}

// DeviceVibrator 设备振动器
//
// 第一次振动时才探测平台是否支持振动，之后复用结果。
// 不支持振动的平台上所有调用都是静默的空操作。
type DeviceVibrator struct {
	once      sync.Once
	supported bool

	// probe 探测平台是否支持振动，测试中替换
	probe func() bool
	// vibrate 振动 d，测试中替换
	vibrate func(d time.Duration)
	// after 延迟执行，测试中替换
	after func(d time.Duration, fn func())
}

// NewDeviceVibrator 创建设备振动器
func NewDeviceVibrator() *DeviceVibrator {
	return &DeviceVibrator{
		probe: platformSupportsVibrate,
		vibrate: func(d time.Duration) {
			ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: 1})
		},
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

var (
	sharedVibrator     *DeviceVibrator
	sharedVibratorOnce sync.Once
)

// SharedVibrator 返回进程内共享的振动器
func SharedVibrator() *DeviceVibrator {
	sharedVibratorOnce.Do(func() {
		sharedVibrator = NewDeviceVibrator()
	})
	return sharedVibrator
}

// platformSupportsVibrate ebiten 仅在移动端和浏览器实现振动
func platformSupportsVibrate() bool {
	if utils.IsMobile() {
		return true
	}
	switch runtime.GOOS {
	case "android", "ios", "js":
		return true
	default:
		return false
	}
}

// Supported 平台是否支持振动
func (v *DeviceVibrator) Supported() bool {
	v.once.Do(func() {
		v.supported = v.probe()
		log.Printf("[Vibrator] Vibration supported: %v", v.supported)
	})
	return v.supported
}

// VibratePattern 按模式振动
//
// pattern 为 [等待, 振动, 等待, 振动, ...] 交替的时长列表，
// 与 Android Vibrator 的模式含义相同。
func (v *DeviceVibrator) VibratePattern(pattern []time.Duration) {
	if len(pattern) == 0 || !v.Supported() {
		return
	}

	var offset time.Duration
	for i := 0; i+1 < len(pattern); i += 2 {
		offset += pattern[i]
		on := pattern[i+1]
		if on > 0 {
			v.schedule(offset, on)
		}
		offset += on
	}
}

// VibrateKey 按键振动
func (v *DeviceVibrator) VibrateKey() {
	v.VibratePattern(KeyVibratePattern)
}

func (v *DeviceVibrator) schedule(offset, on time.Duration) {
	if offset <= 0 {
		v.vibrate(on)
		return
	}
	v.after(offset, func() { v.vibrate(on) })
}
