// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). How it is parsed and
// dispatched (chat message, CLI) is defined by adapters that wrap this.
package cmd

import "context"

// Invocation carries the minimal input any command runner can pass: arguments
// and an opaque payload. Adapters set Data to their context (e.g. a chat
// message context carrying the session and the event).
type Invocation struct {
	Name string
	Args []string
	Data interface{}
}

// Command is the universal contract: identity plus execution. Permissions,
// throttling and transport-specific replies stay in adapters and middleware.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Aliased is implemented by commands reachable under alternate names.
type Aliased interface {
	Aliases() []string
}

// Guardable is implemented by commands that may refuse to be disabled.
type Guardable interface {
	Guarded() bool
}
