package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/suggestions/pkg/events"
)

const debugEvent = "debug"

// bridgeLibraryLog routes discordgo's own log output to the "debug" event
// as (level, message). It returns a func restoring the previous logger.
func bridgeLibraryLog(emitter *events.Emitter) (restore func()) {
	prev := discordgo.Logger
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		emitter.Emit(debugEvent, msgL, fmt.Sprintf(format, a...))
	}
	return func() { discordgo.Logger = prev }
}

func libraryLogLevel(level string) int {
	if strings.EqualFold(level, "debug") {
		return discordgo.LogDebug
	}
	return discordgo.LogInformational
}
