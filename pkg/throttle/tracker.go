// Package throttle tracks per-user usage windows for commands.
//
// A Tracker belongs to a single command. The first invocation by a user
// opens a window and schedules its expiry; later invocations inside the
// window are counted against the policy. When the window elapses the
// state is dropped and the next invocation opens a fresh one.
//
//	t := throttle.NewTracker(throttle.Policy{Usages: 2, Duration: 5 * time.Second})
//	if d := t.Allow(userID); !d.Allowed {
//	    // tell the user to wait d.RetryAfter
//	}
package throttle

import (
	"sync"
	"time"
)

// Policy limits a user to Usages invocations per Duration.
type Policy struct {
	Usages   int
	Duration time.Duration
}

// DefaultPolicy applies to commands that do not configure their own.
var DefaultPolicy = Policy{Usages: 2, Duration: 5 * time.Second}

// Disabled returns a policy that turns throttling off.
func Disabled() Policy { return Policy{} }

// Enabled reports whether the policy limits anything at all.
func (p Policy) Enabled() bool {
	return p.Usages >= 1 && p.Duration > 0
}

// State is a snapshot of one user's current window.
type State struct {
	Start  time.Time
	Usages int
}

// Decision is the outcome of Allow.
type Decision struct {
	Allowed bool
	// State is the window after the decision was applied. Zero when the
	// user is not tracked (throttling disabled or exempt user).
	State State
	// RetryAfter is how long until the window expires. Only set on denial.
	RetryAfter time.Duration
}

// ExemptFunc reports whether a user bypasses throttling.
type ExemptFunc func(userID string) bool

// Option configures a Tracker.
type Option func(*Tracker)

// WithExempt sets the exemption predicate, typically "is a bot owner".
func WithExempt(fn ExemptFunc) Option {
	return func(t *Tracker) { t.exempt = fn }
}

// WithScheduler replaces the time source and timer implementation.
func WithScheduler(s Scheduler) Option {
	return func(t *Tracker) { t.sched = s }
}

// entry is the tracked window. The expiry task holds a pointer to the
// entry it was created with, so it only ever removes that entry.
type entry struct {
	start  time.Time
	usages int
	expiry Timer
}

// Tracker owns the usage windows of one command. It is safe for
// concurrent use.
type Tracker struct {
	policy Policy
	exempt ExemptFunc
	sched  Scheduler

	mu     sync.Mutex
	states map[string]*entry
}

// NewTracker returns a tracker enforcing policy.
func NewTracker(policy Policy, opts ...Option) *Tracker {
	t := &Tracker{
		policy: policy,
		sched:  SystemScheduler{},
		states: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the policy the tracker enforces.
func (t *Tracker) Policy() Policy { return t.policy }

// Check opens a window for userID if none is active and returns it.
// It does not count the invocation. The boolean is false when the user
// is not tracked at all, either because the policy is disabled or the
// user is exempt; nothing is recorded in that case.
func (t *Tracker) Check(userID string) (State, bool) {
	if t.untracked(userID) {
		return State{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.ensureLocked(userID)
	return State{Start: e.start, Usages: e.usages}, true
}

// Allow checks userID's window and counts the invocation if it fits
// under the policy. The invocation that would exceed Usages is denied
// and not counted.
func (t *Tracker) Allow(userID string) Decision {
	if t.untracked(userID) {
		return Decision{Allowed: true}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.ensureLocked(userID)
	if e.usages >= t.policy.Usages {
		retry := e.start.Add(t.policy.Duration).Sub(t.sched.Now())
		if retry < 0 {
			retry = 0
		}
		return Decision{
			State:      State{Start: e.start, Usages: e.usages},
			RetryAfter: retry,
		}
	}
	e.usages++
	return Decision{Allowed: true, State: State{Start: e.start, Usages: e.usages}}
}

// Reset drops userID's window before it expires. The pending expiry is
// stopped; if it fires anyway it finds nothing to remove.
func (t *Tracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.states[userID]; ok {
		e.expiry.Stop()
		delete(t.states, userID)
	}
}

// Len returns the number of users with an active window.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}

func (t *Tracker) untracked(userID string) bool {
	if !t.policy.Enabled() {
		return true
	}
	return t.exempt != nil && t.exempt(userID)
}

// ensureLocked returns userID's live window, opening a new one when there
// is none or the old one has elapsed but its expiry has not run yet.
func (t *Tracker) ensureLocked(userID string) *entry {
	now := t.sched.Now()
	if e, ok := t.states[userID]; ok {
		if now.Before(e.start.Add(t.policy.Duration)) {
			return e
		}
		e.expiry.Stop()
		delete(t.states, userID)
	}
	e := &entry{start: now}
	e.expiry = t.sched.AfterFunc(t.policy.Duration, func() {
		t.expire(userID, e)
	})
	t.states[userID] = e
	return e
}

func (t *Tracker) expire(userID string, e *entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[userID] == e {
		delete(t.states, userID)
	}
}
