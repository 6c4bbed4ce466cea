package audio

import (
	"math"
	"time"
)

// ToneConfig 合成提示音参数
type ToneConfig struct {
	SampleRate int           // 采样率，需与 audio.Context 一致
	Frequency  float64       // 基频（Hz）
	Duration   time.Duration // 总时长
	Amplitude  float64       // 峰值幅度 0.0 ~ 1.0
	Pulses     int           // 蜂鸣次数，<= 1 为单个长音
}

// DefaultToneConfig 默认的双响提示音
func DefaultToneConfig(sampleRate int) ToneConfig {
	return ToneConfig{
		SampleRate: sampleRate,
		Frequency:  880,
		Duration:   600 * time.Millisecond,
		Amplitude:  0.6,
		Pulses:     2,
	}
}

// rampSeconds 每个脉冲起止处的线性淡入淡出时长，避免爆音
const rampSeconds = 0.01

// NewTone 生成正弦波提示音
// 多个脉冲时，每个脉冲占一半时间发声、一半时间静音。
func NewTone(cfg ToneConfig) *PCMStream {
	if cfg.SampleRate <= 0 || cfg.Duration <= 0 {
		return NewPCMStream(nil, cfg.SampleRate)
	}
	pulses := cfg.Pulses
	if pulses < 1 {
		pulses = 1
	}
	amp := math.Max(0, math.Min(1, cfg.Amplitude))

	frames := int(cfg.Duration.Seconds() * float64(cfg.SampleRate))
	out := make([]byte, frames*BytesPerFrame)

	pulseFrames := frames / pulses
	onFrames := pulseFrames
	if pulses > 1 {
		onFrames = pulseFrames / 2
	}
	ramp := int(rampSeconds * float64(cfg.SampleRate))

	for i := 0; i < frames; i++ {
		pos := i
		if pulseFrames > 0 {
			pos = i % pulseFrames
		}
		if pos >= onFrames {
			continue
		}

		env := 1.0
		if ramp > 0 {
			if pos < ramp {
				env = float64(pos) / float64(ramp)
			} else if onFrames-pos < ramp {
				env = float64(onFrames-pos) / float64(ramp)
			}
		}

		t := float64(i) / float64(cfg.SampleRate)
		v := int16(math.Sin(2*math.Pi*cfg.Frequency*t) * amp * env * math.MaxInt16)
		putFrame(out, i, v, v)
	}

	return NewPCMStream(out, cfg.SampleRate)
}
