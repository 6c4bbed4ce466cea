// Package app 提供番茄钟应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pomodoro/pkg/clock"
	"github.com/decker502/pomodoro/pkg/config"
	"github.com/decker502/pomodoro/pkg/embedded"
	"github.com/decker502/pomodoro/pkg/game"
	"github.com/decker502/pomodoro/pkg/scenes"
	"github.com/decker502/pomodoro/pkg/timer"
)

// AppName gdata 存储使用的应用名
const AppName = "pomodoro"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件，覆盖内置的 data/pomodoro.yaml，为空则只用内置配置
	ConfigPath string
}

// App 是番茄钟应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	appConfig    *config.AppConfig
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	engine       *timer.Engine

	// 两种 tick 来源只会有一个非 nil
	frameScheduler *clock.FrameScheduler
	wallScheduler  *clock.WallScheduler

	frameDelta               float64 // 每个 Update 对应的秒数（1/TPS）
	verbose                  bool
	closed                   bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	palette, err := appConfig.Theme.Palette()
	if err != nil {
		return nil, fmt.Errorf("主题配置无效: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(appConfig.Alert.SampleRate)
	resourceManager := game.NewResourceManager(audioContext)

	// 偏好设置（gdata 不可用时只保存在内存中）
	settings := game.NewSettingsManager(game.OpenSettingsStore(AppName))

	// 提示音加载失败时静默运行
	var player game.SoundPlayer
	if p, err := resourceManager.LoadAlertSound(appConfig.Alert); err != nil {
		log.Printf("[App] Warning: alert sound unavailable: %v", err)
	} else {
		player = p
	}
	alert := game.NewAlertPlayer(player, settings)

	a := &App{
		appConfig:  appConfig,
		settings:   settings,
		frameDelta: 1.0 / float64(appConfig.Window.TPS),
		verbose:    cfg.Verbose,
	}

	var scheduler timer.Scheduler
	if appConfig.Timer.TickSource == config.TickSourceWall {
		a.wallScheduler = clock.NewWallScheduler(clock.SystemClock)
		scheduler = a.wallScheduler
	} else {
		a.frameScheduler = clock.NewFrameScheduler(appConfig.Timer.MaxCatchUp)
		scheduler = a.frameScheduler
	}
	log.Printf("[App] Tick source: %s, interval: %v", appConfig.Timer.TickSource, appConfig.TickInterval())

	a.engine = timer.NewEngine(scheduler, alert, timer.Options{
		Interval:   appConfig.TickInterval(),
		HoldAtZero: appConfig.Timer.HoldAtZero,
	})

	timerScene, err := scenes.NewTimerScene(resourceManager, a.engine, alert, settings, palette)
	if err != nil {
		a.engine.Close()
		return nil, fmt.Errorf("界面初始化失败: %w", err)
	}

	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SwitchTo(timerScene)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// LoadConfig 加载内置配置，再用 path 指向的外部文件覆盖
//
// 内置配置不可用时（例如测试中未调用 embedded.Init）使用代码中的默认值
func LoadConfig(path string) (*config.AppConfig, error) {
	base := config.DefaultAppConfig()
	if embedded.IsInitialized() && embedded.Exists(config.DefaultConfigPath) {
		data, err := embedded.ReadFile(config.DefaultConfigPath)
		if err != nil {
			return nil, err
		}
		if base, err = config.ParseAppConfig(data, base); err != nil {
			return nil, fmt.Errorf("embedded %s: %w", config.DefaultConfigPath, err)
		}
		log.Printf("[Config] Loaded embedded %s", config.DefaultConfigPath)
	}

	if path == "" {
		return base, nil
	}
	cfg, err := config.LoadAppConfig(path, base)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] Applied overrides from %s", path)
	return cfg, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（默认每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.appConfig.Window.Width, a.appConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.appConfig.Window.Width, a.appConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.advanceClock()
	a.sceneManager.Update(a.frameDelta)
	return nil
}

// advanceClock 推进 tick 来源，计时回调在这里同步执行
func (a *App) advanceClock() {
	switch {
	case a.frameScheduler != nil:
		// 四舍五入，避免 1/60 秒被截断后每秒少走一个 tick
		a.frameScheduler.Advance(time.Duration(math.Round(a.frameDelta * float64(time.Second))))
	case a.wallScheduler != nil:
		a.wallScheduler.Pump()
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Close 停止计时并保存偏好设置，可重复调用
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.engine.Close()
	if a.wallScheduler != nil {
		a.wallScheduler.Stop()
	}
	a.sceneManager.Close()
	if err := a.settings.Save(); err != nil {
		return err
	}
	log.Printf("[App] Closed")
	return nil
}

// WindowConfig 返回窗口配置，由 main 在 RunGame 前应用
func (a *App) WindowConfig() config.WindowConfig {
	return a.appConfig.Window
}

// Engine 返回计时引擎
func (a *App) Engine() *timer.Engine {
	return a.engine
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
