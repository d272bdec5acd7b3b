package discord

import (
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// dispatch forwards every gateway event to the emitter as (session, event)
// under the event's camelCase name.
func (b *Bot) dispatch(s *discordgo.Session, e interface{}) {
	name := EventName(e)
	if name == "" {
		return
	}
	b.emitter.Emit(name, s, e)
}

// EventName maps a discordgo event struct to its handler name:
// *discordgo.MessageCreate becomes "messageCreate". Raw *discordgo.Event
// values and non-pointer values have no name.
func EventName(e interface{}) string {
	if _, raw := e.(*discordgo.Event); raw {
		return ""
	}
	t := reflect.TypeOf(e)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return ""
	}
	name := t.Elem().Name()
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToLower(r)) + name[size:]
}
