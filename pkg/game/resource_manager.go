package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	pcm "github.com/decker502/pomodoro/internal/audio"
	"github.com/decker502/pomodoro/pkg/config"
	"github.com/decker502/pomodoro/pkg/embedded"
)

// 内置字体标识
const (
	FontRegular = "builtin:goregular"
	FontMono    = "builtin:gomonobold"
)

// ResourceManager manages loading and caching of the alert sound and UI fonts.
// Paths starting with "data/" are read from the embedded file system,
// everything else from disk.
type ResourceManager struct {
	audioContext    *audio.Context
	audioCache      map[string]*audio.Player
	fontSourceCache map[string]*text.GoTextFaceSource
	fontFaceCache   map[string]*text.GoTextFace
}

// NewResourceManager creates a ResourceManager bound to the given audio context.
// audioContext may be nil when only fonts are needed.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:    audioContext,
		audioCache:      make(map[string]*audio.Player),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// readResource 读取资源文件，data/ 前缀走嵌入文件系统
func readResource(path string) ([]byte, error) {
	if strings.HasPrefix(filepath.ToSlash(path), "data/") && embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// DecodeSound 按扩展名解码音频数据，输出为 sampleRate 的 16 位双声道流
//
// 支持 .mp3 .ogg .wav .au；.au 在采样率不一致时重采样
//
// 参数：
//   - ext: 文件扩展名（含点，大小写不敏感）
//   - data: 文件内容
//   - sampleRate: 目标采样率（通常为 audio.Context 的采样率）
//
// 返回：
//   - io.ReadSeeker: 可交给 audio.Context.NewPlayer 的流
//   - error: 格式不支持或解码失败
func DecodeSound(ext string, data []byte, sampleRate int) (io.ReadSeeker, error) {
	reader := bytes.NewReader(data)

	switch strings.ToLower(ext) {
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3: %w", err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG: %w", err)
		}
		return stream, nil
	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV: %w", err)
		}
		return stream, nil
	case ".au":
		stream, err := pcm.DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU: %w", err)
		}
		if stream.SampleRate() == sampleRate {
			return stream, nil
		}
		log.Printf("[ResourceManager] Resampling AU %d Hz -> %d Hz", stream.SampleRate(), sampleRate)
		return audio.Resample(stream, stream.Length(), stream.SampleRate(), sampleRate), nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav, .au)", ext)
	}
}

// LoadSoundEffect loads a one-shot sound from path and caches its player.
//
// Parameters:
//   - path: file path, e.g. "data/alert.ogg" (embedded) or "/home/me/beep.wav".
//
// Returns:
//   - A player ready to play (not started).
//   - An error if the file cannot be read, decoded, or the format is unsupported.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", path)
	}

	data, err := readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file %s: %w", path, err)
	}

	stream, err := DecodeSound(filepath.Ext(path), data, rm.audioContext.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// NewTonePlayer 创建合成提示音的播放器
func (rm *ResourceManager) NewTonePlayer(cfg pcm.ToneConfig) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for synthesized tone")
	}
	cfg.SampleRate = rm.audioContext.SampleRate()
	player, err := rm.audioContext.NewPlayer(pcm.NewTone(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create tone player: %w", err)
	}
	return player, nil
}

// LoadAlertSound 按配置加载提示音
// 配置了 soundPath 时优先加载文件，失败则记录警告并回退到合成提示音
func (rm *ResourceManager) LoadAlertSound(cfg config.AlertConfig) (*audio.Player, error) {
	if cfg.SoundPath != "" {
		player, err := rm.LoadSoundEffect(cfg.SoundPath)
		if err == nil {
			log.Printf("[ResourceManager] Alert sound loaded: %s", cfg.SoundPath)
			return player, nil
		}
		log.Printf("[ResourceManager] Warning: %v (falling back to synthesized tone)", err)
	}

	tone := pcm.DefaultToneConfig(cfg.SampleRate)
	tone.Frequency = cfg.ToneHz
	tone.Duration = cfg.ToneDuration()
	tone.Pulses = cfg.TonePulses
	return rm.NewTonePlayer(tone)
}

// LoadFont returns a text face of the given size.
// name is either FontRegular, FontMono or a path to a .ttf/.otf file.
// Faces are cached by name and size.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.fontSource(name)
	if err != nil {
		return nil, err
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// fontSource 加载并缓存字体源，同一字体的不同字号共用一个源
func (rm *ResourceManager) fontSource(name string) (*text.GoTextFaceSource, error) {
	if source, exists := rm.fontSourceCache[name]; exists {
		return source, nil
	}

	var fontData []byte
	switch name {
	case FontRegular:
		fontData = goregular.TTF
	case FontMono:
		fontData = gomonobold.TTF
	default:
		data, err := readResource(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
	}
	rm.fontSourceCache[name] = source
	return source, nil
}
