// Package clock 提供 timer.Scheduler 的两种实现
//
//   - FrameScheduler：由游戏循环逐帧推进（Ebitengine 每秒调用 Update 固定次数）
//   - WallScheduler：由真实时钟驱动，通知先进入邮箱，再在 Update 中统一执行
//
// 两者都保证回调只在驱动引擎的 goroutine 上、一次一个地执行。
package clock

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/decker502/pomodoro/pkg/timer"
)

// DefaultMaxCatchUp 单个句柄在一帧内最多补发的回调次数
// 窗口被拖动或系统休眠后帧间隔可能很大，限制补发避免一次性跳过大量秒数
const DefaultMaxCatchUp = 4

type frameEntry struct {
	interval time.Duration
	elapsed  time.Duration
	callback func()
}

// FrameScheduler 基于帧的调度器
// 每帧由 App.Update 调用 Advance(dt)，到期的回调在 Advance 内同步执行，
// 因此与用户输入处理天然串行。
type FrameScheduler struct {
	mu         sync.Mutex
	entries    map[timer.Handle]*frameEntry
	nextHandle timer.Handle
	maxCatchUp int
}

// NewFrameScheduler 创建帧调度器
// maxCatchUp <= 0 时使用 DefaultMaxCatchUp
func NewFrameScheduler(maxCatchUp int) *FrameScheduler {
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUp
	}
	return &FrameScheduler{
		entries:    make(map[timer.Handle]*frameEntry),
		maxCatchUp: maxCatchUp,
	}
}

// ScheduleRepeating 注册重复回调
func (s *FrameScheduler) ScheduleRepeating(interval time.Duration, callback func()) timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHandle++
	s.entries[s.nextHandle] = &frameEntry{interval: interval, callback: callback}
	log.Printf("[FrameScheduler] Scheduled handle %d every %v", s.nextHandle, interval)
	return s.nextHandle
}

// Cancel 取消句柄
func (s *FrameScheduler) Cancel(h timer.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[h]; ok {
		delete(s.entries, h)
		log.Printf("[FrameScheduler] Cancelled handle %d", h)
	}
}

// Active 返回存活的句柄数
func (s *FrameScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Advance 推进 dt 并触发到期回调
// 回调执行时不持有锁，回调内部可以安全地 Cancel / ScheduleRepeating；
// 在本轮中被取消的句柄不会再触发。
func (s *FrameScheduler) Advance(dt time.Duration) {
	for _, h := range s.dueHandles(dt) {
		fires := s.take(h)
		for i := 0; i < fires; i++ {
			cb, ok := s.callback(h)
			if !ok {
				break
			}
			cb()
		}
	}
}

// dueHandles 累加时间并返回有到期回调的句柄（按创建顺序）
func (s *FrameScheduler) dueHandles(dt time.Duration) []timer.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []timer.Handle
	for h, e := range s.entries {
		e.elapsed += dt
		if e.interval > 0 && e.elapsed >= e.interval {
			due = append(due, h)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })
	return due
}

// take 计算本帧应触发的次数并扣除对应时间
func (s *FrameScheduler) take(h timer.Handle) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return 0
	}
	fires := int(e.elapsed / e.interval)
	e.elapsed -= time.Duration(fires) * e.interval
	if fires > s.maxCatchUp {
		log.Printf("[FrameScheduler] Handle %d fell behind by %d intervals, dropping %d", h, fires, fires-s.maxCatchUp)
		fires = s.maxCatchUp
	}
	return fires
}

func (s *FrameScheduler) callback(h timer.Handle) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h]
	if !ok {
		return nil, false
	}
	return e.callback, true
}
