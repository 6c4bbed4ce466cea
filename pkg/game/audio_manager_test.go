package game

import (
	"errors"
	"testing"
	"time"

	"github.com/decker502/pomodoro/pkg/timer"
)

// mockSoundPlayer 记录调用的播放器
type mockSoundPlayer struct {
	playing   bool
	plays     int
	pauses    int
	rewinds   int
	volume    float64
	rewindErr error
}

func (m *mockSoundPlayer) Play()                    { m.playing = true; m.plays++ }
func (m *mockSoundPlayer) Pause()                   { m.playing = false; m.pauses++ }
func (m *mockSoundPlayer) SetVolume(volume float64) { m.volume = volume }
func (m *mockSoundPlayer) IsPlaying() bool          { return m.playing }
func (m *mockSoundPlayer) Rewind() error {
	m.rewinds++
	return m.rewindErr
}

// schedulerFunc 把每个调度请求交给函数记录，不会自动触发
type schedulerFunc func(callback func())

func (f schedulerFunc) ScheduleRepeating(_ time.Duration, callback func()) timer.Handle {
	f(callback)
	return 1
}

func (f schedulerFunc) Cancel(timer.Handle) {}

var _ timer.Alert = (*AlertPlayer)(nil)

func TestAlertPlayerPlay(t *testing.T) {
	player := &mockSoundPlayer{}
	sm := NewSettingsManager(nil)
	sm.SetAlertVolume(0.3)
	ap := NewAlertPlayer(player, sm)

	ap.PlayAlert()

	if player.plays != 1 || !ap.IsPlaying() {
		t.Errorf("plays: got %d, playing %v", player.plays, ap.IsPlaying())
	}
	if player.rewinds != 1 {
		t.Errorf("PlayAlert should rewind first, rewinds %d", player.rewinds)
	}
	if player.volume != 0.3 {
		t.Errorf("volume: got %v, want 0.3", player.volume)
	}
}

func TestAlertPlayerStopAndRewind(t *testing.T) {
	player := &mockSoundPlayer{}
	ap := NewAlertPlayer(player, nil)

	ap.PlayAlert()
	ap.StopAndRewindAlert()

	if ap.IsPlaying() {
		t.Error("still playing after StopAndRewindAlert")
	}
	if player.pauses != 1 || player.rewinds != 2 {
		t.Errorf("pauses %d rewinds %d, want 1 and 2", player.pauses, player.rewinds)
	}
}

// TestAlertPlayerDisabled 关闭后不播放
func TestAlertPlayerDisabled(t *testing.T) {
	player := &mockSoundPlayer{}
	sm := NewSettingsManager(nil)
	ap := NewAlertPlayer(player, sm)

	if enabled := ap.ToggleEnabled(); enabled {
		t.Fatal("ToggleEnabled should disable")
	}
	ap.PlayAlert()
	if player.plays != 0 {
		t.Errorf("played while disabled: %d", player.plays)
	}

	if enabled := ap.ToggleEnabled(); !enabled {
		t.Fatal("ToggleEnabled should enable again")
	}
	ap.PlayAlert()
	if player.plays != 1 {
		t.Errorf("plays after re-enable: %d", player.plays)
	}
}

// TestAlertPlayerToggleStopsPlayback 关闭时停止正在播放的提示音
func TestAlertPlayerToggleStopsPlayback(t *testing.T) {
	player := &mockSoundPlayer{}
	ap := NewAlertPlayer(player, NewSettingsManager(nil))

	ap.PlayAlert()
	ap.ToggleEnabled()
	if player.playing {
		t.Error("alert still playing after disabling")
	}
}

// TestAlertPlayerRewindError 回绕失败只记录日志，仍然播放
func TestAlertPlayerRewindError(t *testing.T) {
	player := &mockSoundPlayer{rewindErr: errors.New("seek failed")}
	ap := NewAlertPlayer(player, nil)

	ap.PlayAlert()
	if player.plays != 1 {
		t.Errorf("plays: got %d, want 1", player.plays)
	}
	ap.StopAndRewindAlert()
}

// TestAlertPlayerNilPlayer 无音频时所有操作都是空操作
func TestAlertPlayerNilPlayer(t *testing.T) {
	ap := NewAlertPlayer(nil, nil)
	ap.PlayAlert()
	ap.StopAndRewindAlert()
	ap.SetVolume(0.5)
	if ap.IsPlaying() {
		t.Error("nil player reports playing")
	}
	if ap.Volume() != DefaultSettings().AlertVolume {
		t.Errorf("Volume: got %v", ap.Volume())
	}
}

func TestAlertPlayerSetVolume(t *testing.T) {
	player := &mockSoundPlayer{}
	sm := NewSettingsManager(nil)
	ap := NewAlertPlayer(player, sm)

	ap.SetVolume(1.7)
	if player.volume != 1.0 || sm.GetSettings().AlertVolume != 1.0 {
		t.Errorf("volume not clamped: player %v settings %v", player.volume, sm.GetSettings().AlertVolume)
	}
}

// TestAlertPlayerWithEngine 阶段切换时播放，重置时停止
func TestAlertPlayerWithEngine(t *testing.T) {
	player := &mockSoundPlayer{}
	ap := NewAlertPlayer(player, nil)

	var ticks []func()
	sched := schedulerFunc(func(cb func()) { ticks = append(ticks, cb) })
	engine := timer.NewEngine(sched, ap, timer.Options{})

	for i := 0; i < 24; i++ {
		engine.AdjustSession(-1)
	}
	engine.StartPause()
	if len(ticks) != 1 {
		t.Fatalf("scheduled %d callbacks, want 1", len(ticks))
	}
	for i := 0; i < 60; i++ {
		ticks[0]()
	}
	if player.plays != 1 {
		t.Errorf("plays after phase change: %d", player.plays)
	}
	if engine.Phase() != timer.PhaseBreak {
		t.Errorf("phase: got %v, want Break", engine.Phase())
	}

	engine.Reset()
	if player.playing {
		t.Error("alert still playing after Reset")
	}
}
