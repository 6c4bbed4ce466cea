package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Sun/NeXT audio (.au) 文件头，固定 24 字节，大端
type auHeader struct {
	Magic      uint32 // 0x2e736e64 (".snd")
	DataOffset uint32 // 音频数据偏移，至少 24
	DataSize   uint32 // 数据长度，0xFFFFFFFF 表示未知
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic         = 0x2e736e64
	auHeaderSize    = 24
	auUnknownSize   = 0xFFFFFFFF
	auEncodingULaw  = 1 // 8 位 μ-law
	auEncodingPCM16 = 3 // 16 位线性 PCM（大端）
)

// DecodeAU 解码 .au 文件为 16 位双声道 PCM
// 支持 μ-law 与 16 位 PCM 编码，单声道会复制到左右声道。
// 采样率保持文件原值，需要时由调用方重采样。
func DecodeAU(r io.Reader) (*PCMStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("AU file too short: %d bytes (minimum %d)", len(data), auHeaderSize)
	}

	header := auHeader{
		Magic:      binary.BigEndian.Uint32(data[0:4]),
		DataOffset: binary.BigEndian.Uint32(data[4:8]),
		DataSize:   binary.BigEndian.Uint32(data[8:12]),
		Encoding:   binary.BigEndian.Uint32(data[12:16]),
		SampleRate: binary.BigEndian.Uint32(data[16:20]),
		Channels:   binary.BigEndian.Uint32(data[20:24]),
	}

	if header.Magic != auMagic {
		return nil, fmt.Errorf("invalid AU magic number: 0x%08x (expected 0x%08x)", header.Magic, auMagic)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", header.Channels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid AU sample rate: 0")
	}

	start := int(header.DataOffset)
	if start < auHeaderSize || start > len(data) {
		return nil, fmt.Errorf("invalid data offset: %d (file size: %d)", start, len(data))
	}
	body := data[start:]
	if header.DataSize != auUnknownSize && int(header.DataSize) < len(body) {
		body = body[:header.DataSize]
	}

	var samples []int16
	switch header.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = decodeMuLaw(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d (supported: 1 μ-law, 3 PCM16)", header.Encoding)
	}

	channels := int(header.Channels)
	frames := len(samples) / channels
	out := make([]byte, frames*BytesPerFrame)
	for i := 0; i < frames; i++ {
		left := samples[i*channels]
		right := left
		if channels == 2 {
			right = samples[i*channels+1]
		}
		putFrame(out, i, left, right)
	}

	return NewPCMStream(out, int(header.SampleRate)), nil
}

// decodeMuLaw G.711 μ-law 解压为 16 位 PCM
func decodeMuLaw(u byte) int16 {
	u = ^u
	sign := u & 0x80
	exponent := (u >> 4) & 0x07
	mantissa := u & 0x0F

	sample := ((int32(mantissa) << 3) + 0x84) << exponent
	sample -= 0x84
	if sign != 0 {
		return int16(-sample)
	}
	return int16(sample)
}
