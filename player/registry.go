package player

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Default is the player the launcher and the bridge use when none is named.
const Default = "Catalina"

var ErrUnknownPlayer = errors.New("unknown player")

type Factory func(opts ...Option) Player

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

func init() {
	Register("First", func(opts ...Option) Player { return NewFirst(opts...) })
	Register("Random", func(opts ...Option) Player { return NewRandom(opts...) })
	Register("Greedy", func(opts ...Option) Player { return NewGreedy(opts...) })
	Register("Weighted", func(opts ...Option) Player { return NewWeighted(opts...) })
	Register(Default, func(opts ...Option) Player { return NewCatalina(opts...) })
}

// Register makes a player available by name. It panics when the name is
// empty or taken.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if name == "" || factory == nil {
		panic("player: Register needs a name and a factory")
	}
	if _, dup := registry[name]; dup {
		panic("player: Register called twice for " + name)
	}
	registry[name] = factory
}

// New builds a fresh instance of the named player.
func New(name string, opts ...Option) (Player, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	return factory(append([]Option{withName(name)}, opts...)...), nil
}

// Names lists the registered players in order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
