// Package audio 提供提示音使用的 PCM 数据流
//
// Ebitengine 的 audio.Player 需要 16 位有符号、小端、双声道的数据，
// 本包中的解码器和合成器都输出这种格式。
package audio

import (
	"fmt"
	"io"
)

// BytesPerFrame 每个采样帧的字节数（16 位 × 2 声道）
const BytesPerFrame = 4

// PCMStream 内存中的 16 位双声道 PCM 数据
// 实现 io.ReadSeeker 与 Length()，可以直接交给 audio.Context.NewPlayer
type PCMStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

// NewPCMStream 用已经是 16 位双声道小端格式的数据创建流
func NewPCMStream(data []byte, sampleRate int) *PCMStream {
	return &PCMStream{data: data, sampleRate: sampleRate}
}

// Read reads PCM data into p.
func (s *PCMStream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
func (s *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length returns the stream size in bytes.
func (s *PCMStream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate returns the sample rate in Hz.
func (s *PCMStream) SampleRate() int {
	return s.sampleRate
}

// Duration 返回播放时长（秒）
func (s *PCMStream) Duration() float64 {
	if s.sampleRate <= 0 {
		return 0
	}
	return float64(len(s.data)/BytesPerFrame) / float64(s.sampleRate)
}

// putFrame 以小端格式写入一个双声道采样帧
func putFrame(buf []byte, i int, left, right int16) {
	buf[i*BytesPerFrame] = byte(left)
	buf[i*BytesPerFrame+1] = byte(left >> 8)
	buf[i*BytesPerFrame+2] = byte(right)
	buf[i*BytesPerFrame+3] = byte(right >> 8)
}
