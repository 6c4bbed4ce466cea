package timer

// 时长参数的边界与默认值（单位：分钟）
const (
	// MinMinutes 时长下限
	MinMinutes = 1
	// MaxMinutes 时长上限
	MaxMinutes = 60

	// DefaultBreakMinutes 默认休息时长
	DefaultBreakMinutes = 5
	// DefaultSessionMinutes 默认专注时长
	DefaultSessionMinutes = 25
)

// Phase 表示当前所处的阶段
type Phase int

const (
	// PhaseSession 专注阶段
	PhaseSession Phase = iota
	// PhaseBreak 休息阶段
	PhaseBreak
)

// String returns the label shown above the countdown.
func (p Phase) String() string {
	switch p {
	case PhaseSession:
		return "Session"
	case PhaseBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Status 是 IsRunning 与 IsSessionPhase 组合出的四种可观察状态
type Status int

const (
	StatusIdleSession Status = iota
	StatusRunningSession
	StatusIdleBreak
	StatusRunningBreak
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdleSession:
		return "IDLE_SESSION"
	case StatusRunningSession:
		return "RUNNING_SESSION"
	case StatusIdleBreak:
		return "IDLE_BREAK"
	case StatusRunningBreak:
		return "RUNNING_BREAK"
	default:
		return "UNKNOWN"
	}
}

// State 计时器的全部可变状态
// 由 Engine 独占持有，外部只能通过 Engine.Snapshot() 拿到副本
type State struct {
	BreakMinutes     int  // 休息时长 [1,60]
	SessionMinutes   int  // 专注时长 [1,60]
	SecondsRemaining int  // 当前倒计时剩余秒数，始终 >= 0
	IsRunning        bool // 是否正在计时
	IsSessionPhase   bool // true = 专注阶段，false = 休息阶段
}

// DefaultState 返回应用启动时（以及 Reset 之后）的规范状态
func DefaultState() State {
	return State{
		BreakMinutes:     DefaultBreakMinutes,
		SessionMinutes:   DefaultSessionMinutes,
		SecondsRemaining: DefaultSessionMinutes * 60,
		IsRunning:        false,
		IsSessionPhase:   true,
	}
}

// Phase 返回当前阶段
func (s State) Phase() Phase {
	if s.IsSessionPhase {
		return PhaseSession
	}
	return PhaseBreak
}

// Status 返回四种可观察状态之一
func (s State) Status() Status {
	switch {
	case s.IsSessionPhase && s.IsRunning:
		return StatusRunningSession
	case s.IsSessionPhase:
		return StatusIdleSession
	case s.IsRunning:
		return StatusRunningBreak
	default:
		return StatusIdleBreak
	}
}

// inRange 判断分钟数是否落在 [MinMinutes, MaxMinutes]
func inRange(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}
