package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundManager 按键音管理器
// 职责：
//   - 合成并缓存按键音 PCM
//   - 按 SettingsManager 中的音量播放
//
// 按键音是否播放由调用方根据 KeySoundEnabled 决定，这里只负责播放本身。
type SoundManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager

	clickPCM    []byte  // 缓存的按键音数据
	clickVolume float64 // 缓存数据对应的音量

	// play 实际播放函数，测试中替换
	play func(pcm []byte)
}

// NewSoundManager 创建按键音管理器
//
// 参数：
//   - audioContext: ebiten 音频上下文，可为 nil（静音模式）
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewSoundManager(audioContext *audio.Context, sm *SettingsManager) *SoundManager {
	s := &SoundManager{
		audioContext:    audioContext,
		settingsManager: sm,
		clickVolume:     -1,
	}
	s.play = s.playWithContext
	return s
}

// PlayKeyDown 播放一次按键音
// 返回是否实际发出了声音
func (s *SoundManager) PlayKeyDown() bool {
	volume := s.volume()
	if volume <= 0 {
		return false
	}

	if s.clickPCM == nil || s.clickVolume != volume {
		s.clickPCM = SynthesizeKeyClick(s.sampleRate(), volume)
		s.clickVolume = volume
	}
	if len(s.clickPCM) == 0 {
		return false
	}

	s.play(s.clickPCM)
	return true
}

// volume 当前按键音音量
func (s *SoundManager) volume() float64 {
	if s.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return s.settingsManager.GetSettings().SoundVolume
}

// sampleRate 音频上下文采样率，未初始化时使用 48000
func (s *SoundManager) sampleRate() int {
	if s.audioContext == nil {
		return 48000
	}
	return s.audioContext.SampleRate()
}

// playWithContext 通过 ebiten 音频上下文播放 PCM
func (s *SoundManager) playWithContext(pcm []byte) {
	if s.audioContext == nil {
		return
	}
	player := s.audioContext.NewPlayerFromBytes(pcm)
	if player == nil {
		log.Printf("[SoundManager] Failed to create key click player")
		return
	}
	player.Play()
}
