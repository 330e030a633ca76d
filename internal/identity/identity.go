// Package identity tracks the local/real id pair for every record created
// during an editing session. Records are addressed by their local id
// everywhere inside the client; the real id only matters at the remote store
// boundary, and work that needs a still-unconfirmed real id is parked here
// until the store assigns one.
package identity

import (
	"errors"
	"sync"

	"github.com/quillhq/quill/internal/document"
)

// ErrConflict is returned when a second, different real id is attached to a
// local id. The record's sync state is unrecoverable at that point.
var ErrConflict = errors.New("identity conflict: real id already attached")

// Registry maps session-local ids to store-assigned real ids.
type Registry struct {
	mu      sync.Mutex
	real    map[string]document.RealID
	pending map[string][]func(document.RealID)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		real:    make(map[string]document.RealID),
		pending: make(map[string][]func(document.RealID)),
	}
}

// Resolve returns the real id attached to localID, or document.Unknown when
// the store has not confirmed the record yet.
func (r *Registry) Resolve(localID string) document.RealID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.real[localID]
}

// AttachReal records the store-assigned id for localID and runs any work
// parked on it. Attaching the same value twice is a no-op; attaching a
// different value is ErrConflict.
func (r *Registry) AttachReal(localID string, realID document.RealID) error {
	if !realID.Known() {
		return errors.New("attach real: id is unknown")
	}

	r.mu.Lock()
	if existing, ok := r.real[localID]; ok {
		r.mu.Unlock()
		if existing != realID {
			return ErrConflict
		}
		return nil
	}
	r.real[localID] = realID
	waiting := r.pending[localID]
	delete(r.pending, localID)
	r.mu.Unlock()

	for _, fn := range waiting {
		fn(realID)
	}
	return nil
}

// WhenResolved runs fn with the real id for localID: immediately if it is
// already known, otherwise once AttachReal delivers it. This is how child
// create calls wait for their parent's id.
func (r *Registry) WhenResolved(localID string, fn func(document.RealID)) {
	r.mu.Lock()
	if realID, ok := r.real[localID]; ok {
		r.mu.Unlock()
		fn(realID)
		return
	}
	r.pending[localID] = append(r.pending[localID], fn)
	r.mu.Unlock()
}

// PendingCount reports how many callbacks are parked waiting for localID.
func (r *Registry) PendingCount(localID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending[localID])
}
