package game

import (
	"log"
)

// SoundPlayer 提示音播放器需要的能力
// *audio.Player 满足此接口
type SoundPlayer interface {
	Play()
	Pause()
	Rewind() error
	SetVolume(volume float64)
	IsPlaying() bool
}

// AlertPlayer 计时阶段切换时的提示音
// 职责：
//   - 实现 timer.Alert（PlayAlert / StopAndRewindAlert）
//   - 从 SettingsManager 读取音量和开关
//   - 播放失败只记录日志，不影响计时
//
// 所有方法都在 Update 所在的 goroutine 中调用
type AlertPlayer struct {
	player          SoundPlayer      // 可为 nil（无音频设备时静默）
	settingsManager *SettingsManager // 可为 nil（使用默认音量）
}

// NewAlertPlayer 创建提示音播放器
//
// 参数：
//   - player: 已加载的提示音，可为 nil
//   - sm: 设置管理器，可为 nil
func NewAlertPlayer(player SoundPlayer, sm *SettingsManager) *AlertPlayer {
	if player == nil {
		log.Printf("[AlertPlayer] Warning: no alert sound available, alerts will be silent")
	}
	return &AlertPlayer{
		player:          player,
		settingsManager: sm,
	}
}

// PlayAlert 从头播放提示音
func (ap *AlertPlayer) PlayAlert() {
	if ap.player == nil || !ap.IsEnabled() {
		return
	}

	ap.player.SetVolume(ap.Volume())
	if err := ap.player.Rewind(); err != nil {
		log.Printf("[AlertPlayer] Warning: Failed to rewind alert: %v", err)
	}
	ap.player.Play()
	log.Printf("[AlertPlayer] Alert played (volume: %.2f)", ap.Volume())
}

// StopAndRewindAlert 停止提示音并回到开头
func (ap *AlertPlayer) StopAndRewindAlert() {
	if ap.player == nil {
		return
	}
	ap.player.Pause()
	if err := ap.player.Rewind(); err != nil {
		log.Printf("[AlertPlayer] Warning: Failed to rewind alert: %v", err)
	}
}

// IsPlaying 返回提示音是否正在播放
func (ap *AlertPlayer) IsPlaying() bool {
	return ap.player != nil && ap.player.IsPlaying()
}

// Volume 返回当前音量设置
func (ap *AlertPlayer) Volume() float64 {
	if ap.settingsManager != nil {
		return ap.settingsManager.GetSettings().AlertVolume
	}
	return DefaultSettings().AlertVolume
}

// IsEnabled 返回提示音是否开启
func (ap *AlertPlayer) IsEnabled() bool {
	if ap.settingsManager != nil {
		return ap.settingsManager.GetSettings().AlertEnabled
	}
	return true
}

// SetVolume 设置音量并立即应用到正在播放的提示音
// 需要持久化时由调用方执行 SettingsManager.Save()
func (ap *AlertPlayer) SetVolume(volume float64) {
	if ap.settingsManager != nil {
		ap.settingsManager.SetAlertVolume(volume)
	}
	if ap.player != nil {
		ap.player.SetVolume(ap.Volume())
	}
}

// ToggleEnabled 切换提示音开关，关闭时立即停止正在播放的提示音
//
// 返回：
//   - bool: 切换后的状态
func (ap *AlertPlayer) ToggleEnabled() bool {
	if ap.settingsManager == nil {
		return true
	}
	enabled := !ap.settingsManager.GetSettings().AlertEnabled
	ap.settingsManager.SetAlertEnabled(enabled)
	if !enabled {
		ap.StopAndRewindAlert()
	}
	log.Printf("[AlertPlayer] Alert enabled: %v", enabled)
	return enabled
}
