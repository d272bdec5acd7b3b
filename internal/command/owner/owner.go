// Package owner holds maintenance commands restricted to the bot owners.
package owner

import (
	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/throttle"
)

const category = "Owner"

// Commands builds every command of the package.
func Commands(client command.Client) []cmd.Command {
	return []cmd.Command{
		NewReload(client),
		NewToggle(client),
	}
}

func unthrottled() *throttle.Policy {
	p := throttle.Disabled()
	return &p
}
