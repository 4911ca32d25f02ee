package game

import (
	"testing"
)

// TestSynthesizeKeyClick 测试按键音合成的长度和格式
func TestSynthesizeKeyClick(t *testing.T) {
	pcm := SynthesizeKeyClick(48000, 1.0)

	// 28ms @ 48000Hz = 1344 帧，每帧 4 字节
	wantFrames := 48000 * 28 / 1000
	if len(pcm) != wantFrames*4 {
		t.Errorf("len(pcm) = %d, want %d", len(pcm), wantFrames*4)
	}
	if len(pcm)%4 != 0 {
		t.Error("PCM must be whole 16-bit stereo frames")
	}

	nonZero := false
	for _, b := range pcm {
		if b != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("key click should not be silent at full volume")
	}
}

// TestSynthesizeKeyClickSilent 测试 0 音量合成静音数据
func TestSynthesizeKeyClickSilent(t *testing.T) {
	pcm := SynthesizeKeyClick(48000, 0)
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
}

// TestToInt16Clamp 测试采样值截断
func TestToInt16Clamp(t *testing.T) {
	tests := []struct {
		input float64
		want  int16
	}{
		{0, 0},
		{1, 32767},
		{2, 32767},
		{-2, -32767},
	}
	for _, tt := range tests {
		if got := toInt16(tt.input); got != tt.want {
			t.Errorf("toInt16(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// TestSoundManagerPlayKeyDown 测试播放受音量控制并缓存 PCM
func TestSoundManagerPlayKeyDown(t *testing.T) {
	settings, _ := NewSettingsManager(nil)
	sm := NewSoundManager(nil, settings)

	var played [][]byte
	sm.play = func(pcm []byte) { played = append(played, pcm) }

	if !sm.PlayKeyDown() {
		t.Fatal("PlayKeyDown should play at default volume")
	}
	if !sm.PlayKeyDown() {
		t.Fatal("second PlayKeyDown should play")
	}
	if len(played) != 2 {
		t.Fatalf("played %d times, want 2", len(played))
	}
	if &played[0][0] != &played[1][0] {
		t.Error("PCM should be cached between plays at the same volume")
	}

	settings.SetSoundVolume(0)
	if sm.PlayKeyDown() {
		t.Error("PlayKeyDown should not play at volume 0")
	}
	if len(played) != 2 {
		t.Errorf("played %d times after mute, want 2", len(played))
	}
}
