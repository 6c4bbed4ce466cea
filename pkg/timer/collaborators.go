package timer

import "time"

// Alert is the audible-alert capability the engine drives.
// Implementations must not block and must swallow their own failures:
// a broken speaker never stops the countdown.
type Alert interface {
	// PlayAlert is called on every phase zero-crossing.
	PlayAlert()
	// StopAndRewindAlert is called on Reset.
	StopAndRewindAlert()
}

// Handle identifies a repeating schedule. The zero value means "none".
type Handle uint64

// Scheduler is the periodic notification source.
// Callbacks must be delivered on the goroutine that drives the engine,
// one at a time. Cancel on an unknown or already cancelled handle is a no-op,
// and a cancelled handle must never fire again, even if a notification was
// already pending.
type Scheduler interface {
	ScheduleRepeating(interval time.Duration, callback func()) Handle
	Cancel(h Handle)
}

type nopAlert struct{}

func (nopAlert) PlayAlert()          {}
func (nopAlert) StopAndRewindAlert() {}

// NopAlert returns an Alert that does nothing.
func NopAlert() Alert { return nopAlert{} }
