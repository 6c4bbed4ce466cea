package clock

import (
	"testing"
	"time"

	"github.com/decker502/pomodoro/pkg/timer"
)

func TestWallSchedulerDeliversThroughPump(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)

	count := 0
	h := s.ScheduleRepeating(time.Second, func() { count++ })
	if h == 0 {
		t.Fatal("ScheduleRepeating returned zero handle")
	}

	fc.Advance(3 * time.Second)
	if count != 0 {
		t.Errorf("callback ran before Pump: %d", count)
	}
	if ran := s.Pump(); ran != 3 {
		t.Errorf("Pump: got %d, want 3", ran)
	}
	if count != 3 {
		t.Errorf("count: got %d, want 3", count)
	}

	fc.Advance(500 * time.Millisecond)
	if ran := s.Pump(); ran != 0 {
		t.Errorf("Pump after half interval: got %d, want 0", ran)
	}
	fc.Advance(500 * time.Millisecond)
	if ran := s.Pump(); ran != 1 {
		t.Errorf("Pump after full interval: got %d, want 1", ran)
	}
}

// TestWallSchedulerDropsCancelledEvents 已排队但句柄已取消的通知不执行
func TestWallSchedulerDropsCancelledEvents(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)

	count := 0
	h := s.ScheduleRepeating(time.Second, func() { count++ })
	fc.Advance(2 * time.Second)
	s.Cancel(h)

	if ran := s.Pump(); ran != 0 {
		t.Errorf("Pump after Cancel: got %d, want 0", ran)
	}
	if fc.pending() != 0 {
		t.Errorf("pending timers after Cancel: %d", fc.pending())
	}
	if s.Active() != 0 {
		t.Errorf("Active: got %d, want 0", s.Active())
	}
	s.Cancel(h) // 重复取消无副作用
	s.Cancel(12345)
}

func TestWallSchedulerMailboxOverflow(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)
	s.ScheduleRepeating(time.Second, func() {})

	fc.Advance(100 * time.Second)
	if ran := s.Pump(); ran != DefaultMailboxSize {
		t.Errorf("Pump: got %d, want %d", ran, DefaultMailboxSize)
	}
}

func TestWallSchedulerStop(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)
	s.ScheduleRepeating(time.Second, func() {})
	s.ScheduleRepeating(2*time.Second, func() {})

	s.Stop()
	if s.Active() != 0 || fc.pending() != 0 {
		t.Errorf("after Stop: active=%d pending=%d", s.Active(), fc.pending())
	}
	if h := s.ScheduleRepeating(time.Second, func() {}); h != 0 {
		t.Errorf("ScheduleRepeating after Stop: got handle %d, want 0", h)
	}
}

func TestWallSchedulerRejectsNonPositiveInterval(t *testing.T) {
	s := NewWallScheduler(newFakeClock())
	if h := s.ScheduleRepeating(0, func() {}); h != 0 {
		t.Errorf("got handle %d, want 0", h)
	}
}

func TestWallSchedulerDrivesEngine(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)
	e := timer.NewEngine(s, nil, timer.Options{})

	e.StartPause()
	fc.Advance(5 * time.Second)
	s.Pump()
	if got := e.Snapshot().SecondsRemaining; got != 1495 {
		t.Errorf("SecondsRemaining: got %d, want 1495", got)
	}

	// 一个 tick 已排队，随后 Reset：该 tick 不应被观察到
	fc.Advance(time.Second)
	e.Reset()
	s.Pump()
	if got := e.Snapshot(); got != timer.DefaultState() {
		t.Errorf("queued tick observed after Reset: %+v", got)
	}
	if s.Active() != 0 {
		t.Errorf("Active after Reset: %d", s.Active())
	}
}

// TestWallSchedulerNoDuplicateSources 快速切换暂停/开始不会叠加 tick 来源
func TestWallSchedulerNoDuplicateSources(t *testing.T) {
	fc := newFakeClock()
	s := NewWallScheduler(fc)
	e := timer.NewEngine(s, nil, timer.Options{})

	e.StartPause()
	fc.Advance(time.Second) // 旧句柄排队一个 tick
	e.StartPause()
	e.StartPause()
	if s.Active() != 1 {
		t.Fatalf("Active: got %d, want 1", s.Active())
	}

	fc.Advance(3 * time.Second)
	s.Pump()
	if got := e.Snapshot().SecondsRemaining; got != 1497 {
		t.Errorf("SecondsRemaining: got %d, want 1497", got)
	}
}
