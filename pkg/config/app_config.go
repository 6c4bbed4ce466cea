package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败时包装返回
var ErrInvalidConfig = errors.New("invalid config")

// Tick 来源
const (
	TickSourceFrame = "frame" // 由游戏循环逐帧推进
	TickSourceWall  = "wall"  // 由真实时钟推进
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/pomodoro.yaml"

// AppConfig 应用配置
// 加载顺序：代码默认值 -> 嵌入的 data/pomodoro.yaml -> 命令行 -config 指定的文件
type AppConfig struct {
	Window WindowConfig `yaml:"window"`
	Timer  TimerConfig  `yaml:"timer"`
	Alert  AlertConfig  `yaml:"alert"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"` // 每秒 Update 次数
}

// TimerConfig 计时器配置
type TimerConfig struct {
	TickIntervalMs int    `yaml:"tickIntervalMs"`
	TickSource     string `yaml:"tickSource"` // frame | wall
	HoldAtZero     bool   `yaml:"holdAtZero"` // 在 00:00 停留一个 tick 再切换阶段
	MaxCatchUp     int    `yaml:"maxCatchUp"` // 帧调度器单帧最多补发次数
}

// AlertConfig 提示音配置
type AlertConfig struct {
	SoundPath  string  `yaml:"soundPath"` // 为空时使用合成提示音；支持 .mp3 .ogg .wav .au
	SampleRate int     `yaml:"sampleRate"`
	ToneHz     float64 `yaml:"toneHz"`
	ToneMs     int     `yaml:"toneMs"`
	TonePulses int     `yaml:"tonePulses"`
}

// ThemeConfig 颜色配置，格式 #RRGGBB 或 #RRGGBBAA
type ThemeConfig struct {
	Background string `yaml:"background"`
	Panel      string `yaml:"panel"`
	Session    string `yaml:"session"`
	Break      string `yaml:"break"`
	Text       string `yaml:"text"`
	Button     string `yaml:"button"`
}

// DefaultAppConfig 返回代码内置的默认配置
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Title:  "Pomodoro Clock",
			Width:  ScreenWidth,
			Height: ScreenHeight,
			TPS:    60,
		},
		Timer: TimerConfig{
			TickIntervalMs: 1000,
			TickSource:     TickSourceFrame,
			HoldAtZero:     false,
			MaxCatchUp:     4,
		},
		Alert: AlertConfig{
			SoundPath:  "",
			SampleRate: 48000,
			ToneHz:     880,
			ToneMs:     600,
			TonePulses: 2,
		},
		Theme: ThemeConfig{
			Background: "#1e2a38",
			Panel:      "#2c3e50",
			Session:    "#e74c3c",
			Break:      "#27ae60",
			Text:       "#ecf0f1",
			Button:     "#3d566e",
		},
	}
}

// ParseAppConfig 将 YAML 数据合并到 base 的副本上并校验
// 未出现在 YAML 中的字段保留 base 的值；base 为 nil 时使用 DefaultAppConfig
func ParseAppConfig(data []byte, base *AppConfig) (*AppConfig, error) {
	if base == nil {
		base = DefaultAppConfig()
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAppConfig 从文件加载配置并合并到 base 上
func LoadAppConfig(path string, base *AppConfig) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file %s: %w", path, err)
	}
	cfg, err := ParseAppConfig(data, base)
	if err != nil {
		return nil, fmt.Errorf("app config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置的合法性
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 1 || c.Window.TPS > 240 {
		return fmt.Errorf("%w: tps must be between 1 and 240, got %d", ErrInvalidConfig, c.Window.TPS)
	}

	if c.Timer.TickIntervalMs < 1 {
		return fmt.Errorf("%w: tickIntervalMs must be at least 1, got %d", ErrInvalidConfig, c.Timer.TickIntervalMs)
	}
	switch c.Timer.TickSource {
	case TickSourceFrame, TickSourceWall:
	default:
		return fmt.Errorf("%w: tickSource must be one of: %s, %s, got %q", ErrInvalidConfig, TickSourceFrame, TickSourceWall, c.Timer.TickSource)
	}
	if c.Timer.MaxCatchUp < 0 {
		return fmt.Errorf("%w: maxCatchUp cannot be negative, got %d", ErrInvalidConfig, c.Timer.MaxCatchUp)
	}

	if c.Alert.SampleRate < 8000 || c.Alert.SampleRate > 192000 {
		return fmt.Errorf("%w: sampleRate must be between 8000 and 192000, got %d", ErrInvalidConfig, c.Alert.SampleRate)
	}
	if c.Alert.ToneHz <= 0 || c.Alert.ToneMs <= 0 {
		return fmt.Errorf("%w: toneHz and toneMs must be positive", ErrInvalidConfig)
	}

	if _, err := c.Theme.Palette(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// TickInterval 返回 tick 间隔
func (c *AppConfig) TickInterval() time.Duration {
	return time.Duration(c.Timer.TickIntervalMs) * time.Millisecond
}

// ToneDuration 返回合成提示音时长
func (a AlertConfig) ToneDuration() time.Duration {
	return time.Duration(a.ToneMs) * time.Millisecond
}
