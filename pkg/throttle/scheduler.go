package throttle

import "time"

// Timer is a pending scheduled task.
type Timer interface {
	// Stop prevents the task from firing. It reports whether the call
	// stopped the task before it ran.
	Stop() bool
}

// Scheduler supplies the current time and fire-and-forget delayed tasks.
// Tasks run on their own goroutine and must not block the caller.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler is a Scheduler backed by the time package.
type SystemScheduler struct{}

func (SystemScheduler) Now() time.Time { return time.Now() }

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
