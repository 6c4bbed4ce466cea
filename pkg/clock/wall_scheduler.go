package clock

import (
	"log"
	"sync"
	"time"

	"github.com/decker502/pomodoro/pkg/timer"
)

// DefaultMailboxSize 邮箱容量，超出后新的通知被丢弃
const DefaultMailboxSize = 64

type wallEntry struct {
	interval time.Duration
	start    time.Time
	fired    int64 // 已经投递的次数，用于按起点计算下一次触发时间，避免漂移
	callback func()
	timer    Timer
}

// WallScheduler 基于真实时钟的调度器
//
// 后台定时器只把句柄投递到邮箱，回调在 Pump() 中执行；
// Pump 由 App.Update 调用，因此回调与用户操作串行。
// Pump 执行前会再次检查句柄是否存活：取消之前已经投递、尚未执行的通知会被丢弃，
// 这样暂停/重置之后不会再观察到旧的 tick，也不会出现两个 tick 来源叠加。
type WallScheduler struct {
	mu         sync.Mutex
	clock      Clock
	entries    map[timer.Handle]*wallEntry
	nextHandle timer.Handle
	mailbox    chan timer.Handle
	stopped    bool
}

// NewWallScheduler 创建真实时钟调度器
// clock 为 nil 时使用 SystemClock
func NewWallScheduler(clock Clock) *WallScheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &WallScheduler{
		clock:   clock,
		entries: make(map[timer.Handle]*wallEntry),
		mailbox: make(chan timer.Handle, DefaultMailboxSize),
	}
}

// ScheduleRepeating 注册重复回调
// Stop 之后调用返回零句柄
func (s *WallScheduler) ScheduleRepeating(interval time.Duration, callback func()) timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || interval <= 0 {
		return 0
	}

	s.nextHandle++
	h := s.nextHandle
	e := &wallEntry{
		interval: interval,
		start:    s.clock.Now(),
		callback: callback,
	}
	s.entries[h] = e
	s.armLocked(h, e)

	log.Printf("[WallScheduler] Scheduled handle %d every %v", h, interval)
	return h
}

// armLocked 为下一次触发设置定时器（调用方必须持有锁）
func (s *WallScheduler) armLocked(h timer.Handle, e *wallEntry) {
	next := e.start.Add(time.Duration(e.fired+1) * e.interval)
	delay := next.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	e.timer = s.clock.AfterFunc(delay, func() { s.fire(h) })
}

// fire 在定时器 goroutine 上运行：投递通知并重新装填
func (s *WallScheduler) fire(h timer.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return
	}
	e.fired++

	select {
	case s.mailbox <- h:
	default:
		log.Printf("[WallScheduler] Warning: mailbox full, dropping tick for handle %d", h)
	}

	s.armLocked(h, e)
}

// Cancel 取消句柄
func (s *WallScheduler) Cancel(h timer.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(s.entries, h)
	log.Printf("[WallScheduler] Cancelled handle %d", h)
}

// Pump 执行邮箱中所有仍然存活的回调，返回执行的数量
// 必须在驱动引擎的 goroutine 上调用
func (s *WallScheduler) Pump() int {
	ran := 0
	for {
		select {
		case h := <-s.mailbox:
			cb, ok := s.callback(h)
			if !ok {
				continue
			}
			cb()
			ran++
		default:
			return ran
		}
	}
}

func (s *WallScheduler) callback(h timer.Handle) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return nil, false
	}
	return e.callback, true
}

// Active 返回存活的句柄数
func (s *WallScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop 取消所有句柄，之后的 ScheduleRepeating 不再生效
func (s *WallScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for h, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.entries, h)
	}
	s.stopped = true
}
