// Package synth 生成背景环境音的 PCM 数据
//
// 不依赖任何音频引擎：桌面版交给 ebiten audio 播放，终端版交给 beep 播放。
package synth

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// SampleRate 默认采样率
const SampleRate = 48000

// LoopSeconds 默认循环长度（秒）
const LoopSeconds = 8.0

// Frame 一个立体声采样（左、右），取值范围 [-1, 1]
type Frame [2]float64

// padNotes 低音和弦（Hz），柔和的水下氛围
var padNotes = []float64{110.0, 164.81, 220.0, 277.18}

// AmbientLoop 生成一段可以无缝循环的环境音
//
// 由低音和弦与缓慢起伏的滤波噪声（海浪）组成。和弦频率被量化为循环长度内的整数周期，
// 海浪包络在首尾为零，所以首尾相接时没有爆音。
//
// 参数:
//   - sampleRate: 采样率
//   - seconds: 循环长度（秒）
//   - seed: 噪声种子
//
// 返回:
//   - []Frame: 立体声采样
func AmbientLoop(sampleRate int, seconds float64, seed int64) []Frame {
	n := int(float64(sampleRate) * seconds)
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	frames := make([]Frame, n)

	freqs := make([]float64, len(padNotes))
	for i, f := range padNotes {
		freqs[i] = math.Round(f*seconds) / seconds
	}

	var lowL, lowR float64
	const smoothing = 0.02
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		phase := t / seconds

		pad := 0.0
		for k, f := range freqs {
			// 每个音的音量缓慢呼吸
			breath := 0.6 + 0.4*math.Sin(2*math.Pi*phase*float64(k+1))
			pad += breath * math.Sin(2*math.Pi*f*t)
		}
		pad /= float64(len(freqs))

		lowL += smoothing * (rng.Float64()*2 - 1 - lowL)
		lowR += smoothing * (rng.Float64()*2 - 1 - lowR)
		swell := math.Pow(math.Sin(math.Pi*phase*2), 2)

		frames[i] = Frame{
			0.25*pad + 0.6*swell*lowL,
			0.25*pad + 0.6*swell*lowR,
		}
	}
	return frames
}

// EncodePCM16 把采样编码为 16 位小端立体声 PCM
//
// 参数:
//   - frames: 立体声采样
//   - volume: 音量 [0, 1]
func EncodePCM16(frames []Frame, volume float64) []byte {
	volume = math.Max(0, math.Min(1, volume))
	buf := make([]byte, len(frames)*4)
	for i, f := range frames {
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(toInt16(f[0]*volume)))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(toInt16(f[1]*volume)))
	}
	return buf
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
