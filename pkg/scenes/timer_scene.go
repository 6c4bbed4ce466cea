package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/pomodoro/pkg/config"
	"github.com/decker502/pomodoro/pkg/game"
	"github.com/decker502/pomodoro/pkg/timer"
	"github.com/decker502/pomodoro/pkg/utils"
)

// Action 用户可以触发的操作
type Action int

const (
	ActionNone Action = iota
	ActionStartPause
	ActionReset
	ActionSessionUp
	ActionSessionDown
	ActionBreakUp
	ActionBreakDown
	ActionToggleMute
	ActionVolumeUp
	ActionVolumeDown
)

// String 返回操作名称，用于日志
func (a Action) String() string {
	switch a {
	case ActionStartPause:
		return "start-pause"
	case ActionReset:
		return "reset"
	case ActionSessionUp:
		return "session+1"
	case ActionSessionDown:
		return "session-1"
	case ActionBreakUp:
		return "break+1"
	case ActionBreakDown:
		return "break-1"
	case ActionToggleMute:
		return "toggle-mute"
	case ActionVolumeUp:
		return "volume+"
	case ActionVolumeDown:
		return "volume-"
	default:
		return "none"
	}
}

// KeyBinding 键盘快捷键
type KeyBinding struct {
	Key    ebiten.Key
	Action Action
	Repeat bool // 按住时自动重复
}

// KeyBindings 默认快捷键（F11 全屏由 App 处理）
var KeyBindings = []KeyBinding{
	{ebiten.KeySpace, ActionStartPause, false},
	{ebiten.KeyR, ActionReset, false},
	{ebiten.KeyUp, ActionSessionUp, true},
	{ebiten.KeyDown, ActionSessionDown, true},
	{ebiten.KeyRight, ActionBreakUp, true},
	{ebiten.KeyLeft, ActionBreakDown, true},
	{ebiten.KeyM, ActionToggleMute, false},
	{ebiten.KeyEqual, ActionVolumeUp, true},
	{ebiten.KeyMinus, ActionVolumeDown, true},
}

// VolumeStep 每次调节音量的步长
const VolumeStep = 0.1

// 高亮动画时长（秒）
const (
	buttonFlashDuration = 0.25
	phaseFlashDuration  = 1.2
)

// buttonActions 界面按钮对应的操作
var buttonActions = map[config.ButtonID]Action{
	config.ButtonBreakDecrement:   ActionBreakDown,
	config.ButtonBreakIncrement:   ActionBreakUp,
	config.ButtonSessionDecrement: ActionSessionDown,
	config.ButtonSessionIncrement: ActionSessionUp,
	config.ButtonStartPause:       ActionStartPause,
	config.ButtonReset:            ActionReset,
}

// sceneFonts 场景使用的字体
type sceneFonts struct {
	title   *text.GoTextFace
	label   *text.GoTextFace
	value   *text.GoTextFace
	phase   *text.GoTextFace
	display *text.GoTextFace
	status  *text.GoTextFace
}

// TimerScene 番茄钟主界面
//
// 只读取引擎状态并把用户输入转换为引擎操作，计时逻辑全部在 timer.Engine 中
type TimerScene struct {
	engine   *timer.Engine
	alert    *game.AlertPlayer     // 可为 nil
	settings *game.SettingsManager // 可为 nil
	palette  config.Palette
	fonts    sceneFonts

	showKeyHints  bool // 桌面端在状态栏显示快捷键提示
	settingsDirty bool // 偏好设置有未保存的修改

	// 动画状态
	pressedButton config.ButtonID
	buttonFlash   float64 // 剩余的按钮高亮时间（秒）
	phaseFlash    float64 // 剩余的阶段切换高亮时间（秒）
}

// NewTimerScene 创建计时器界面
//
// 参数：
//   - rm: 资源管理器（加载字体）
//   - engine: 计时引擎
//   - alert: 提示音播放器，可为 nil
//   - settings: 偏好设置，可为 nil
//   - palette: 主题颜色
//
// 返回：
//   - error: 字体加载失败
func NewTimerScene(rm *game.ResourceManager, engine *timer.Engine, alert *game.AlertPlayer, settings *game.SettingsManager, palette config.Palette) (*TimerScene, error) {
	fonts, err := loadSceneFonts(rm)
	if err != nil {
		return nil, err
	}

	s := &TimerScene{
		engine:       engine,
		alert:        alert,
		settings:     settings,
		palette:      palette,
		fonts:        fonts,
		showKeyHints: !utils.IsMobile(),
	}
	engine.SetOnPhaseChange(s.onPhaseChange)

	log.Printf("[TimerScene] Created (status: %s, display: %s)", engine.Status(), engine.Display())
	return s, nil
}

func loadSceneFonts(rm *game.ResourceManager) (sceneFonts, error) {
	var fonts sceneFonts
	specs := []struct {
		dst  **text.GoTextFace
		name string
		size float64
	}{
		{&fonts.title, game.FontRegular, config.TitleFontSize},
		{&fonts.label, game.FontRegular, config.LengthLabelFontSize},
		{&fonts.value, game.FontMono, config.LengthValueFontSize},
		{&fonts.phase, game.FontRegular, config.PhaseLabelFontSize},
		{&fonts.display, game.FontMono, config.DisplayFontSize},
		{&fonts.status, game.FontRegular, config.StatusBarFontSize},
	}
	for _, spec := range specs {
		face, err := rm.LoadFont(spec.name, spec.size)
		if err != nil {
			return sceneFonts{}, fmt.Errorf("failed to load scene font: %w", err)
		}
		*spec.dst = face
	}
	return fonts, nil
}

// onPhaseChange 阶段切换时触发面板高亮
func (s *TimerScene) onPhaseChange(phase timer.Phase) {
	s.phaseFlash = phaseFlashDuration
	log.Printf("[TimerScene] Phase changed to %s", phase)
}

// Update 处理输入并推进动画
func (s *TimerScene) Update(deltaTime float64) {
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		s.Click(float64(x), float64(y))
	}

	for _, binding := range KeyBindings {
		triggered := false
		if binding.Repeat {
			triggered = utils.IsKeyTriggered(binding.Key)
		} else {
			triggered = inpututil.IsKeyJustPressed(binding.Key)
		}
		if triggered {
			s.Perform(binding.Action)
		}
	}

	s.advanceAnimations(deltaTime)
}

// Click 处理逻辑屏幕坐标上的点击
//
// 返回：
//   - config.ButtonID: 命中的按钮，未命中返回 ButtonNone
func (s *TimerScene) Click(x, y float64) config.ButtonID {
	id := config.HitTest(x, y)
	if id == config.ButtonNone {
		return id
	}
	s.pressedButton = id
	s.buttonFlash = buttonFlashDuration
	s.Perform(buttonActions[id])
	return id
}

// Perform 执行一个操作
//
// 返回：
//   - bool: 操作是否产生了效果（时长调整被拒绝时为 false）
func (s *TimerScene) Perform(action Action) bool {
	switch action {
	case ActionStartPause:
		s.engine.StartPause()
		return true
	case ActionReset:
		s.engine.Reset()
		s.phaseFlash = 0
		return true
	case ActionSessionUp:
		return s.engine.AdjustSession(1)
	case ActionSessionDown:
		return s.engine.AdjustSession(-1)
	case ActionBreakUp:
		return s.engine.AdjustBreak(1)
	case ActionBreakDown:
		return s.engine.AdjustBreak(-1)
	case ActionToggleMute:
		if s.alert == nil {
			return false
		}
		s.alert.ToggleEnabled()
		s.settingsDirty = true
		return true
	case ActionVolumeUp, ActionVolumeDown:
		if s.alert == nil {
			return false
		}
		step := VolumeStep
		if action == ActionVolumeDown {
			step = -VolumeStep
		}
		before := s.alert.Volume()
		s.alert.SetVolume(before + step)
		if s.alert.Volume() == before {
			return false
		}
		s.settingsDirty = true
		return true
	default:
		return false
	}
}

// advanceAnimations 推进高亮动画
func (s *TimerScene) advanceAnimations(deltaTime float64) {
	if s.buttonFlash > 0 {
		s.buttonFlash -= deltaTime
		if s.buttonFlash <= 0 {
			s.buttonFlash = 0
			s.pressedButton = config.ButtonNone
		}
	}
	if s.phaseFlash > 0 {
		s.phaseFlash -= deltaTime
		if s.phaseFlash < 0 {
			s.phaseFlash = 0
		}
	}
}

// StatusText 状态栏文本
func (s *TimerScene) StatusText() string {
	volume := "Volume --"
	if s.alert != nil {
		if s.alert.IsEnabled() {
			volume = fmt.Sprintf("Volume %d%%", int(s.alert.Volume()*100+0.5))
		} else {
			volume = "Muted"
		}
	}
	if !s.showKeyHints {
		return volume
	}
	return volume + "   Space start/pause  R reset  M mute  F11 fullscreen"
}

// Close 保存偏好设置（实现 game.Closable）
func (s *TimerScene) Close() error {
	if !s.settingsDirty || s.settings == nil {
		return nil
	}
	if err := s.settings.Save(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.settingsDirty = false
	return nil
}
