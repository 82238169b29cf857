// Package plugin implements a named-event callback registry: a plugin host
// (an external collaborator, out of scope here) registers handlers during
// its own initialization, and the core fires events into it at well-known
// points (block place/break, player join/leave, and so on).
package plugin

import (
	"log"
	"sync"
)

// Handler is a registered callback. args are event-specific — on_block_place
// passes (player, pos), on_player_join passes (player) — so this package
// stays untyped rather than picking one signature per event.
type Handler func(args ...any)

// Registry stores at most one handler per event name. Registration is
// idempotent-replace: registering the same name twice silently replaces
// the previous handler rather than erroring or stacking.
type Registry struct {
	mu       sync.Mutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// On registers handler under name, replacing whatever was registered there.
func (r *Registry) On(name string, handler Handler) {
	r.mu.Lock()
	r.handlers[name] = handler
	r.mu.Unlock()
}

// Fire invokes the handler registered for name, if any, on the calling
// goroutine. A panicking handler is recovered and logged so it cannot take
// down the tick loop that raised the event; the registration is left in
// place.
func (r *Registry) Fire(name string, args ...any) {
	r.mu.Lock()
	h, ok := r.handlers[name]
	r.mu.Unlock()
	if !ok {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("plugin: handler for %q panicked: %v", name, rec)
		}
	}()
	h(args...)
}
