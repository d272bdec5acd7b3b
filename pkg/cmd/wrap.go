package cmd

import "context"

// Unwrapper is a command layered over another one. The registry stores
// the outermost layer; options, throttle trackers and aliases live on
// the innermost.
type Unwrapper interface {
	Command
	Unwrap() Command
}

type layer struct {
	next Command
	run  func(ctx context.Context, inv *Invocation) error
}

func (l *layer) Name() string        { return l.next.Name() }
func (l *layer) Description() string { return l.next.Description() }
func (l *layer) Unwrap() Command     { return l.next }

func (l *layer) Run(ctx context.Context, inv *Invocation) error {
	return l.run(ctx, inv)
}

// Wrap layers run over c. The layer answers to c's name and calls run
// in place of c.Run; run decides whether c.Run is reached at all.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	if run == nil {
		run = c.Run
	}
	return &layer{next: c, run: run}
}

// Root peels every layer off c and returns the command it was built from.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrapper)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}

// AliasesOf returns the aliases declared by the command under c's layers.
func AliasesOf(c Command) []string {
	if a, ok := Root(c).(Aliased); ok {
		return a.Aliases()
	}
	return nil
}
