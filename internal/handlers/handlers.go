// Package handlers implements the bot's event handlers. Each handler is
// registered under a key in Factories and bound to an event by a
// definition file in the events directory.
package handlers

import (
	"fmt"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/events"
)

// Factories holds every handler of the package, keyed by the name of the
// definition file that usually selects it.
var Factories = events.NewFactories[command.Client]()

// arg returns args[i] as a T.
func arg[T any](args []any, i int) (T, bool) {
	var zero T
	if i >= len(args) {
		return zero, false
	}
	v, ok := args[i].(T)
	return v, ok
}

func unexpected(event string, args []any) string {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = fmt.Sprintf("%T", a)
	}
	return fmt.Sprintf("%s handler got unexpected arguments %v", event, types)
}
