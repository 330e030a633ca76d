// Package focus routes keyboard-focus requests between logically adjacent
// inputs without the requester knowing how, or whether, the target is
// rendered right now.
package focus

// Dispatcher is a registry from logical slot to the callback that moves
// focus there. Inputs re-register as they mount; the last registration for a
// slot wins, so a remounted input never leaves a stale callback behind.
type Dispatcher[T comparable] struct {
	callbacks map[T]func()
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher[T comparable]() *Dispatcher[T] {
	return &Dispatcher[T]{callbacks: make(map[T]func())}
}

// Listen registers fn as the focus handler for slot, replacing any previous
// handler.
func (d *Dispatcher[T]) Listen(slot T, fn func()) {
	d.callbacks[slot] = fn
}

// Forget removes the handler for slot, if any.
func (d *Dispatcher[T]) Forget(slot T) {
	delete(d.callbacks, slot)
}

// Focus invokes the handler registered for slot. A slot with no handler is
// a silent no-op: the target may simply not be mounted yet.
func (d *Dispatcher[T]) Focus(slot T) {
	if fn, ok := d.callbacks[slot]; ok {
		fn()
	}
}
