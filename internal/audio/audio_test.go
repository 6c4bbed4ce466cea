package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"
	"time"
)

// buildAU 构造一个最小的 .au 文件
func buildAU(encoding, sampleRate, channels uint32, body []byte) []byte {
	var buf bytes.Buffer
	for _, v := range []uint32{auMagic, auHeaderSize, uint32(len(body)), encoding, sampleRate, channels} {
		binary.Write(&buf, binary.BigEndian, v)
	}
	buf.Write(body)
	return buf.Bytes()
}

func frameAt(t *testing.T, s *PCMStream, i int) (int16, int16) {
	t.Helper()
	if _, err := s.Seek(int64(i*BytesPerFrame), io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	buf := make([]byte, BytesPerFrame)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	return int16(binary.LittleEndian.Uint16(buf[0:])), int16(binary.LittleEndian.Uint16(buf[2:]))
}

func TestDecodeMuLawMatchesG711(t *testing.T) {
	tests := []struct {
		in   byte
		want int16
	}{
		{0x00, -32124},
		{0x0F, -16764},
		{0x7F, 0},
		{0x80, 32124},
		{0xFF, 0},
		{0xFE, 8},
	}
	for _, tt := range tests {
		if got := decodeMuLaw(tt.in); got != tt.want {
			t.Errorf("decodeMuLaw(0x%02x): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeAUMonoULawUpmixed(t *testing.T) {
	data := buildAU(auEncodingULaw, 8000, 1, []byte{0x00, 0x80, 0xFF})
	s, err := DecodeAU(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAU: %v", err)
	}
	if s.SampleRate() != 8000 {
		t.Errorf("SampleRate: got %d, want 8000", s.SampleRate())
	}
	if s.Length() != 3*BytesPerFrame {
		t.Fatalf("Length: got %d, want %d", s.Length(), 3*BytesPerFrame)
	}
	l, r := frameAt(t, s, 0)
	if l != -32124 || r != -32124 {
		t.Errorf("frame 0: got (%d,%d), want (-32124,-32124)", l, r)
	}
	l, r = frameAt(t, s, 1)
	if l != 32124 || r != 32124 {
		t.Errorf("frame 1: got (%d,%d), want (32124,32124)", l, r)
	}
}

func TestDecodeAUStereoPCM16(t *testing.T) {
	body := make([]byte, 8)
	binary.BigEndian.PutUint16(body[0:], uint16(1000))
	binary.BigEndian.PutUint16(body[2:], uint16(0xFC18)) // -1000
	binary.BigEndian.PutUint16(body[4:], uint16(7))
	binary.BigEndian.PutUint16(body[6:], uint16(9))

	s, err := DecodeAU(bytes.NewReader(buildAU(auEncodingPCM16, 44100, 2, body)))
	if err != nil {
		t.Fatalf("DecodeAU: %v", err)
	}
	l, r := frameAt(t, s, 0)
	if l != 1000 || r != -1000 {
		t.Errorf("frame 0: got (%d,%d), want (1000,-1000)", l, r)
	}
	l, r = frameAt(t, s, 1)
	if l != 7 || r != 9 {
		t.Errorf("frame 1: got (%d,%d), want (7,9)", l, r)
	}
}

func TestDecodeAUErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"too short", []byte{1, 2, 3}, "too short"},
		{"bad magic", append([]byte{0, 0, 0, 0}, make([]byte, 20)...), "magic"},
		{"bad encoding", buildAU(27, 8000, 1, []byte{1}), "encoding"},
		{"bad channels", buildAU(auEncodingULaw, 8000, 6, []byte{1}), "channel"},
		{"zero rate", buildAU(auEncodingULaw, 0, 1, []byte{1}), "sample rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAU(bytes.NewReader(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error: got %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestPCMStreamSeek(t *testing.T) {
	s := NewPCMStream(make([]byte, 40), 48000)

	if pos, _ := s.Seek(-8, io.SeekEnd); pos != 32 {
		t.Errorf("SeekEnd: got %d, want 32", pos)
	}
	if pos, _ := s.Seek(4, io.SeekCurrent); pos != 36 {
		t.Errorf("SeekCurrent: got %d, want 36", pos)
	}
	if _, err := s.Seek(-1, io.SeekStart); err == nil {
		t.Error("expected error for negative position")
	}
	if _, err := s.Seek(0, 42); err == nil {
		t.Error("expected error for invalid whence")
	}

	s.Seek(40, io.SeekStart)
	if _, err := s.Read(make([]byte, 4)); err != io.EOF {
		t.Errorf("Read at end: got %v, want EOF", err)
	}
}

func TestNewTone(t *testing.T) {
	cfg := DefaultToneConfig(48000)
	s := NewTone(cfg)

	wantFrames := int(cfg.Duration.Seconds() * 48000)
	if s.Length() != int64(wantFrames*BytesPerFrame) {
		t.Errorf("Length: got %d, want %d", s.Length(), wantFrames*BytesPerFrame)
	}
	if d := s.Duration(); d < 0.59 || d > 0.61 {
		t.Errorf("Duration: got %v, want ~0.6", d)
	}

	// 第一个采样处于淡入起点，应为静音
	if l, r := frameAt(t, s, 0); l != 0 || r != 0 {
		t.Errorf("first frame: got (%d,%d), want silence", l, r)
	}

	// 双脉冲：每个脉冲后半段静音
	pulse := wantFrames / 2
	if l, _ := frameAt(t, s, pulse/2+pulse/4); l != 0 {
		t.Errorf("gap frame not silent: %d", l)
	}

	// 发声段内存在非零采样且不超过幅度上限
	peak := int16(0)
	for i := 0; i < pulse/2; i++ {
		l, _ := frameAt(t, s, i)
		if l > peak {
			peak = l
		}
	}
	const limit = 19661 // 0.6 * 32767 向上取整
	if peak == 0 || peak > limit {
		t.Errorf("peak: got %d, want in (0,%d]", peak, limit)
	}
}

func TestNewToneDegenerate(t *testing.T) {
	if s := NewTone(ToneConfig{SampleRate: 48000}); s.Length() != 0 {
		t.Errorf("zero duration: Length %d", s.Length())
	}
	if s := NewTone(ToneConfig{Duration: time.Second}); s.Length() != 0 {
		t.Errorf("zero rate: Length %d", s.Length())
	}
}
