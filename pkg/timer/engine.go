package timer

import (
	"log"
	"sync"
	"time"
)

// DefaultInterval 默认 tick 间隔
const DefaultInterval = time.Second

// Options 引擎可选参数
type Options struct {
	// Interval 两次 tick 之间的间隔，<= 0 时使用 DefaultInterval
	Interval time.Duration

	// HoldAtZero 为 true 时倒计时在 00:00 停留一个 tick，下一次 tick 才切换阶段
	// 为 false 时在倒计时归零的那一次 tick 上立即切换阶段
	HoldAtZero bool
}

// Engine 番茄钟状态机
//
// 职责：
//   - 持有唯一的 State 实例
//   - 管理唯一的重复 tick 句柄（运行时存在，暂停/重置/关闭时取消）
//   - 在阶段切换时触发提示音
//
// 所有修改预期在同一个 goroutine（Ebitengine 的 Update）上发生；
// 内部互斥锁保证 Snapshot 可以从任意 goroutine 读取。
type Engine struct {
	mu sync.Mutex

	state  State
	handle Handle
	closed bool

	scheduler  Scheduler
	alert      Alert
	interval   time.Duration
	holdAtZero bool

	onPhaseChange func(Phase)
}

// NewEngine 创建处于 idle-session 初始状态的引擎
//
// 参数：
//   - scheduler: tick 来源，为 nil 时 StartPause 只切换状态不会产生 tick
//   - alert: 提示音能力，为 nil 时使用 NopAlert
//   - opts: 可选参数
func NewEngine(scheduler Scheduler, alert Alert, opts Options) *Engine {
	if alert == nil {
		alert = NopAlert()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	if scheduler == nil {
		log.Printf("[TimerEngine] Warning: no scheduler, countdown will not advance")
	}

	return &Engine{
		state:      DefaultState(),
		scheduler:  scheduler,
		alert:      alert,
		interval:   interval,
		holdAtZero: opts.HoldAtZero,
	}
}

// SetOnPhaseChange 设置阶段切换回调（在提示音之后、锁外调用）
func (e *Engine) SetOnPhaseChange(callback func(Phase)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onPhaseChange = callback
}

// AdjustBreak 调整休息时长
// 运行中、已关闭或结果越界时不做任何修改，返回 false。
//
// 注意：与 AdjustSession 不同，这里不会重置倒计时，
// 即使当前处于暂停的休息阶段，显示的剩余时间也保持不变。
func (e *Engine) AdjustBreak(delta int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsRunning || e.closed {
		return false
	}
	next := e.state.BreakMinutes + delta
	if !inRange(next) {
		log.Printf("[TimerEngine] Break length %d rejected (range %d-%d)", next, MinMinutes, MaxMinutes)
		return false
	}
	e.state.BreakMinutes = next
	return true
}

// AdjustSession 调整专注时长
// 接受修改后把倒计时同步为新的专注时长（无论当前处于哪个阶段）。
func (e *Engine) AdjustSession(delta int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsRunning || e.closed {
		return false
	}
	next := e.state.SessionMinutes + delta
	if !inRange(next) {
		log.Printf("[TimerEngine] Session length %d rejected (range %d-%d)", next, MinMinutes, MaxMinutes)
		return false
	}
	e.state.SessionMinutes = next
	e.state.SecondsRemaining = next * 60
	return true
}

// StartPause 在运行与暂停之间切换
// 启动前总是先取消旧句柄，保证任何时刻最多只有一个 tick 来源。
func (e *Engine) StartPause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	e.cancelLocked()
	e.state.IsRunning = !e.state.IsRunning

	if e.state.IsRunning {
		if e.scheduler != nil {
			e.handle = e.scheduler.ScheduleRepeating(e.interval, e.Tick)
		}
		log.Printf("[TimerEngine] Started (%s, %s left)", e.state.Phase(), FormatDisplay(e.state.SecondsRemaining))
	} else {
		log.Printf("[TimerEngine] Paused (%s, %s left)", e.state.Phase(), FormatDisplay(e.state.SecondsRemaining))
	}
}

// Reset 无条件回到默认状态并停止计时，同时停止并倒带提示音
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cancelLocked()
	e.state = DefaultState()
	alert := e.alert
	e.mu.Unlock()

	alert.StopAndRewindAlert()
	log.Printf("[TimerEngine] Reset to defaults")
}

// Tick 推进一秒
// 未运行时收到的 tick（在取消前已排队的通知）会被忽略。
func (e *Engine) Tick() {
	e.mu.Lock()

	if !e.state.IsRunning || e.closed {
		e.mu.Unlock()
		return
	}

	if e.state.SecondsRemaining > 0 {
		e.state.SecondsRemaining--
		if e.state.SecondsRemaining > 0 || e.holdAtZero {
			e.mu.Unlock()
			return
		}
	}

	// 归零：切换阶段并重新填充倒计时
	e.state.IsSessionPhase = !e.state.IsSessionPhase
	if e.state.IsSessionPhase {
		e.state.SecondsRemaining = e.state.SessionMinutes * 60
	} else {
		e.state.SecondsRemaining = e.state.BreakMinutes * 60
	}
	phase := e.state.Phase()
	alert := e.alert
	onPhaseChange := e.onPhaseChange
	e.mu.Unlock()

	log.Printf("[TimerEngine] Phase switched to %s", phase)
	alert.PlayAlert()
	if onPhaseChange != nil {
		onPhaseChange(phase)
	}
}

// Close 释放 tick 句柄
// 关闭后 StartPause / Adjust* 不再生效，迟到的 tick 被忽略。
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.cancelLocked()
	e.state.IsRunning = false
	e.closed = true
}

// cancelLocked 取消当前句柄（调用方必须持有锁）
func (e *Engine) cancelLocked() {
	if e.handle == 0 {
		return
	}
	if e.scheduler != nil {
		e.scheduler.Cancel(e.handle)
	}
	e.handle = 0
}

// Snapshot 返回当前状态的副本
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Display 返回格式化后的剩余时间
func (e *Engine) Display() string {
	return FormatDisplay(e.Snapshot().SecondsRemaining)
}

// Phase 返回当前阶段
func (e *Engine) Phase() Phase {
	return e.Snapshot().Phase()
}

// PhaseLabel 返回 "Session" 或 "Break"
func (e *Engine) PhaseLabel() string {
	return e.Phase().String()
}

// Status 返回四种可观察状态之一
func (e *Engine) Status() Status {
	return e.Snapshot().Status()
}

// IsRunning 返回是否正在计时
func (e *Engine) IsRunning() bool {
	return e.Snapshot().IsRunning
}

// Interval 返回 tick 间隔
func (e *Engine) Interval() time.Duration {
	return e.interval
}
