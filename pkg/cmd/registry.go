package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNameCollision is returned when a name or alias is already taken.
	ErrNameCollision = errors.New("command name collision")
	// ErrUnknownCommand is returned for names nothing is registered under.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrGuarded is returned when disabling a guarded command.
	ErrGuarded = errors.New("command is guarded")
)

// Registry stores commands by name and alias. It does not perform dispatch;
// each adapter looks up commands and invokes them with its own context.
// Lookups are case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string]string
	disabled map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
		disabled: make(map[string]bool),
	}
}

// Register adds a command. Its name and aliases must not collide with the
// name or aliases of any registered command; on collision nothing is added.
func (r *Registry) Register(c Command) error {
	name := normalize(c.Name())
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrNameCollision)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.ownerLocked(name); taken {
		return fmt.Errorf("%w: %q is already used by %q", ErrNameCollision, name, owner)
	}
	aliases := make([]string, 0, len(AliasesOf(c)))
	for _, a := range AliasesOf(c) {
		a = normalize(a)
		if a == "" || a == name {
			continue
		}
		if owner, taken := r.ownerLocked(a); taken {
			return fmt.Errorf("%w: alias %q of %q is already used by %q", ErrNameCollision, a, name, owner)
		}
		aliases = append(aliases, a)
	}

	r.commands[name] = c
	for _, a := range aliases {
		r.aliases[a] = name
	}
	return nil
}

// Get returns the command registered under name, ignoring aliases.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[normalize(name)]
	return c, ok
}

// Resolve returns the command registered under a name or alias.
func (r *Registry) Resolve(nameOrAlias string) (Command, bool) {
	key := normalize(nameOrAlias)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.commands[key]; ok {
		return c, true
	}
	if name, ok := r.aliases[key]; ok {
		return r.commands[name], true
	}
	return nil, false
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// SetEnabled turns a command on or off at runtime. Guarded commands cannot be
// turned off.
func (r *Registry) SetEnabled(nameOrAlias string, enabled bool) error {
	c, ok := r.Resolve(nameOrAlias)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, nameOrAlias)
	}
	if g, ok := Root(c).(Guardable); ok && g.Guarded() && !enabled {
		return fmt.Errorf("%w: %q", ErrGuarded, c.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if enabled {
		delete(r.disabled, normalize(c.Name()))
	} else {
		r.disabled[normalize(c.Name())] = true
	}
	return nil
}

// Enabled reports whether a registered command is turned on.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.disabled[normalize(name)]
}

func (r *Registry) ownerLocked(key string) (string, bool) {
	if c, ok := r.commands[key]; ok {
		return c.Name(), true
	}
	if name, ok := r.aliases[key]; ok {
		return name, true
	}
	return "", false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
