// Package events discovers event handler definitions on disk, builds a
// handler for each one and binds it to a dispatcher under its event name.
//
// A definition is a small YAML file. Its base name (without extension)
// is the default event name and the default handler key:
//
//	events/
//	    ready.yaml          -> event "ready", handler "ready"
//	    messageCreate.yaml  -> event "messageCreate", handler "messageCreate"
//
// A file may override either:
//
//	name: messageCreate
//	handler: commands
//	options:
//	  ignoreBots: true
//
// Handler implementations are registered by key in a Factories set,
// usually from init functions, and constructed fresh on every load.
package events

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Handler reacts to a dispatched event. Arguments are forwarded exactly
// as they were passed to the dispatcher.
type Handler interface {
	Run(args ...any)
}

// Namer is implemented by handlers that declare their own event name.
type Namer interface {
	Name() string
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(args ...any)

func (f HandlerFunc) Run(args ...any) { f(args...) }

// Definition is one handler file.
type Definition struct {
	// Path is the file the definition was read from.
	Path string `yaml:"-"`
	// DerivedName is the file name without its extension.
	DerivedName string `yaml:"-"`

	Name     string         `yaml:"name"`
	Handler  string         `yaml:"handler"`
	Disabled bool           `yaml:"disabled"`
	Options  map[string]any `yaml:"options"`
}

// HandlerKey returns the factory key: the declared handler, or the
// derived name.
func (d Definition) HandlerKey() string {
	if d.Handler != "" {
		return d.Handler
	}
	return d.DerivedName
}

// DecodeOptions decodes the definition's options into out, which must
// be a pointer to a struct. Missing options leave out untouched.
func DecodeOptions(def Definition, out any) error {
	if len(def.Options) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(def.Options); err != nil {
		return fmt.Errorf("decode options of %s: %w", def.Path, err)
	}
	return nil
}

// Descriptor is a handler bound (or about to be bound) to an event name.
type Descriptor struct {
	Name    string
	Path    string
	Key     string
	Handler Handler
}

var (
	// ErrNoHandlers is reported when a directory holds no handler files.
	ErrNoHandlers = errors.New("no event handler files found")
	// ErrUnknownHandler is reported when a definition names a handler
	// key with no registered factory.
	ErrUnknownHandler = errors.New("unknown event handler")
)

// DiscoveryError means the loader found nothing to load. It is not
// fatal: the bot keeps running without event handlers.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover event handlers in %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ConstructionError means a single handler file could not be turned
// into a handler. Other files are unaffected.
type ConstructionError struct {
	Path string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("load event handler %s: %v", e.Path, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
