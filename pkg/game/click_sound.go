package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// 按键音合成参数
const (
	clickFrequency = 1900.0                // 基频 Hz
	clickDuration  = 28 * time.Millisecond // 总时长
	clickRelease   = 22 * time.Millisecond // 衰减段时长
)

// newVolume 创建音量效果，0 音量直接静音
// effects.Volume 使用对数音量，Log2(0) 为 -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// newClickStreamer 合成按键“哒”声：正弦波 + 线性衰减包络
func newClickStreamer(rate beep.SampleRate) beep.Streamer {
	total := rate.N(clickDuration)
	release := rate.N(clickRelease)
	releaseStart := total - release
	step := clickFrequency / float64(rate)

	phase := 0.0
	position := 0
	osc := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if position >= total {
				return i, i > 0
			}

			vol := 1.0
			if position >= releaseStart && release > 0 {
				vol = float64(total-position) / float64(release)
			}
			val := math.Sin(2*math.Pi*phase) * vol
			samples[i][0] = val
			samples[i][1] = val

			phase += step
			phase -= math.Floor(phase)
			position++
		}
		return len(samples), true
	})

	return beep.Take(total, osc)
}

// renderPCM 把 streamer 渲染为 16 位小端立体声 PCM
// ebiten audio 播放器要求该格式
func renderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][ch])))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// toInt16 把 [-1, 1] 的采样值转换为 int16
func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

// SynthesizeKeyClick 生成按键音 PCM 数据
//
// 参数：
//   - sampleRate: 音频上下文采样率
//   - volume: 音量 0.0 ~ 1.0
func SynthesizeKeyClick(sampleRate int, volume float64) []byte {
	rate := beep.SampleRate(sampleRate)
	return renderPCM(newVolume(newClickStreamer(rate), volume))
}
