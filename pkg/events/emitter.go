package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Listener receives the arguments of a fired event.
type Listener func(args ...any)

// Dispatcher binds listeners to event names.
type Dispatcher interface {
	On(name string, fn Listener)
	Off(name string)
}

// Emitter is an in-process Dispatcher. Listeners of one name run in
// registration order on the emitting goroutine.
type Emitter struct {
	log   *zap.Logger
	quiet map[string]struct{}

	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewEmitter creates an emitter. Events named in quiet are never logged
// on dispatch.
func NewEmitter(log *zap.Logger, quiet ...string) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		log:       log,
		quiet:     quietSet(quiet),
		listeners: make(map[string][]Listener),
	}
}

// On appends fn to the listeners of name.
func (e *Emitter) On(name string, fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[name] = append(e.listeners[name], fn)
}

// Off removes every listener of name.
func (e *Emitter) Off(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, name)
}

// Listeners returns how many listeners name has.
func (e *Emitter) Listeners(name string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[name])
}

// Emit calls the listeners of name with args and returns how many ran.
// A panicking listener is logged and does not stop the others.
func (e *Emitter) Emit(name string, args ...any) int {
	e.mu.RLock()
	ls := append([]Listener(nil), e.listeners[name]...)
	e.mu.RUnlock()

	if _, ok := e.quiet[name]; !ok && len(ls) > 0 {
		e.log.Debug("dispatching event", zap.String("event", name), zap.Int("listeners", len(ls)))
	}
	for _, fn := range ls {
		e.call(name, fn, args)
	}
	return len(ls)
}

func (e *Emitter) call(name string, fn Listener, args []any) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("event handler panicked",
				zap.String("event", name),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
		}
	}()
	fn(args...)
}

func quietSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
