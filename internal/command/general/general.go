// Package general holds the commands everyone can use.
package general

import (
	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

const category = "General"

// Commands builds every command of the package.
func Commands(client command.Client) []cmd.Command {
	return []cmd.Command{
		NewInfo(client),
		NewPing(client),
		NewHelp(client),
	}
}
