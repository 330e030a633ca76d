// Package syncer turns a stream of local document mutations into a minimal,
// ordered set of persisted writes. Edits are applied locally first; the
// engine waits for a quiescence window, diffs against the last-synced
// snapshot, and ships the result in a single coalesced call per document.
package syncer

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillhq/quill/internal/api"
	"github.com/quillhq/quill/internal/document"
	"github.com/quillhq/quill/internal/identity"
)

// DefaultWindow is the quiescence delay between the last observed change
// and the write it produces.
const DefaultWindow = 300 * time.Millisecond

// Store is the slice of the remote contract the engine drives.
type Store interface {
	UpdateDocument(realID document.RealID, update api.DocumentUpdate) error
	CreateEndpoint(parentRealID document.RealID, title string, method document.Method, location int) (*api.Endpoint, error)
	CreateField(parentRealID document.RealID, value string, location int) (*api.Field, error)
	DeleteEndpoint(realID document.RealID) error
	DeleteField(realID document.RealID) error
}

// EventKind tags an engine event.
type EventKind int

const (
	// EventSaved means a coalesced write was persisted.
	EventSaved EventKind = iota
	// EventError means a write failed; local state is kept and the next
	// edit's window retries with the latest state.
	EventError
)

// Event is delivered after every write attempt.
type Event struct {
	Kind EventKind
	Err  error
}

// Engine coalesces local edits into persisted writes for one document.
// At most one write is pending or in flight at any time; a write scheduled
// while another is in flight queues behind it and uses the state at the
// moment it actually fires.
type Engine struct {
	store  Store
	ids    *identity.Registry
	log    zerolog.Logger
	window time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	current    document.Document
	lastSynced document.Document
	inflight   bool
	queued     bool
	creating   map[string]bool

	events chan Event
}

// New creates an engine over the given store and identity registry.
func New(store Store, ids *identity.Registry) *Engine {
	return &Engine{
		store:    store,
		ids:      ids,
		log:      zerolog.Nop(),
		window:   DefaultWindow,
		creating: make(map[string]bool),
		events:   make(chan Event, 16),
	}
}

// SetWindow overrides the quiescence window. Tests shorten it.
func (e *Engine) SetWindow(d time.Duration) { e.window = d }

// SetLogger routes engine logs through l.
func (e *Engine) SetLogger(l zerolog.Logger) { e.log = l }

// Events delivers the outcome of every write attempt.
func (e *Engine) Events() <-chan Event { return e.events }

// Start seeds the last-synced snapshot and records every already-confirmed
// id in the registry.
func (e *Engine) Start(synced document.Document) {
	e.mu.Lock()
	e.current = synced
	e.lastSynced = synced
	e.mu.Unlock()

	e.seedIDs(synced)
}

func (e *Engine) seedIDs(doc document.Document) {
	if doc.RealID.Known() {
		_ = e.ids.AttachReal(doc.LocalID, doc.RealID)
	}
	for _, ep := range doc.Endpoints {
		if ep.RealID.Known() {
			_ = e.ids.AttachReal(ep.LocalID, ep.RealID)
		}
		for _, f := range ep.Fields {
			if f.RealID.Known() {
				_ = e.ids.AttachReal(f.LocalID, f.RealID)
			}
		}
	}
}

// Changed records the latest local state. A content difference against the
// last-synced snapshot (re)starts the quiescence window; equality cancels
// any pending write. New changes arriving inside the window restart it, so
// a rapid burst of edits produces exactly one write.
func (e *Engine) Changed(doc document.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = doc
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if document.DocumentsEqual(doc, e.lastSynced) {
		return
	}
	e.timer = time.AfterFunc(e.window, e.fire)
}

// Flush cancels any pending window and fires the write immediately.
func (e *Engine) Flush() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	dirty := !document.DocumentsEqual(e.current, e.lastSynced)
	e.mu.Unlock()
	if dirty {
		e.fire()
	}
}

func (e *Engine) fire() {
	e.mu.Lock()
	if e.inflight {
		e.queued = true
		e.mu.Unlock()
		return
	}
	e.inflight = true
	doc := e.current
	e.mu.Unlock()

	go e.write(doc)
}

// errUnconfirmed marks a write deferred because the document has no real id
// yet. The snapshot must not advance, or edits made before confirmation
// would never be written.
var errUnconfirmed = errors.New("document id unconfirmed")

func (e *Engine) write(doc document.Document) {
	synced, err := e.persist(doc)

	e.mu.Lock()
	if err == nil {
		e.lastSynced = synced
	}
	e.inflight = false
	again := e.queued && !document.DocumentsEqual(e.current, e.lastSynced)
	e.queued = false
	e.mu.Unlock()

	switch {
	case errors.Is(err, errUnconfirmed):
		// Not an outcome: the next change reschedules against the
		// unchanged snapshot once the id is attached.
	case err != nil:
		e.log.Warn().Err(err).Msg("sync write failed")
		e.events <- Event{Kind: EventError, Err: err}
	default:
		e.events <- Event{Kind: EventSaved}
	}

	if again {
		e.fire()
	}
}

// persist ships one full-state write: child creations first (so the store
// assigns ids), then deletions, then the coalesced document update. It
// returns the snapshot with every id the registry resolved along the way.
func (e *Engine) persist(doc document.Document) (document.Document, error) {
	doc = e.resolveIDs(doc)

	if !doc.RealID.Known() {
		e.log.Warn().Str("local_id", doc.LocalID).Msg("document unconfirmed, deferring write")
		return doc, errUnconfirmed
	}

	// Make every confirmed id in this snapshot resolvable before parking
	// child creates on it.
	e.seedIDs(doc)

	if err := e.createMissing(doc); err != nil {
		return doc, err
	}
	if err := e.deleteRemoved(doc); err != nil {
		return doc, err
	}

	doc = e.resolveIDs(doc)
	serialized, err := api.MarshalEndpoints(doc.Endpoints)
	if err != nil {
		return doc, err
	}
	update := api.DocumentUpdate{SerializedEndpoints: &serialized}
	if title := doc.Title; title != e.snapshotTitle() {
		update.Title = &title
	}

	if err := e.store.UpdateDocument(doc.RealID, update); err != nil {
		if api.IsNotFound(err) {
			// The document is gone remotely; local state is allowed to
			// run ahead, so treat it as already applied.
			return doc, nil
		}
		return doc, err
	}
	return doc, nil
}

func (e *Engine) snapshotTitle() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSynced.Title
}

// createMissing issues create calls for records the store has never seen.
// A child whose parent is still unconfirmed parks its call on the registry
// and it runs the moment the parent's id arrives: parent-before-child id
// resolution is a correctness rule, not an optimization.
func (e *Engine) createMissing(doc document.Document) error {
	var firstErr error
	for _, ep := range doc.Endpoints {
		ep := ep
		if !e.confirmed(ep.LocalID, ep.RealID) {
			err := e.createOnce(ep.LocalID, doc.LocalID, func(parentID document.RealID) error {
				created, err := e.store.CreateEndpoint(parentID, ep.Title, ep.Method, ep.Location)
				if err != nil {
					return err
				}
				return e.ids.AttachReal(ep.LocalID, document.RealID(created.ID))
			})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		for _, f := range ep.Fields {
			f := f
			if e.confirmed(f.LocalID, f.RealID) {
				continue
			}
			err := e.createOnce(f.LocalID, ep.LocalID, func(parentID document.RealID) error {
				created, err := e.store.CreateField(parentID, f.Value, f.Location)
				if err != nil {
					return err
				}
				return e.ids.AttachReal(f.LocalID, document.RealID(created.ID))
			})
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *Engine) confirmed(localID string, known document.RealID) bool {
	return known.Known() || e.ids.Resolve(localID).Known()
}

// createOnce runs create with the parent's real id, synchronously when the
// id is already known, otherwise parked on the registry. The creating set
// stops a retrying write from parking a duplicate create for the same
// record.
func (e *Engine) createOnce(localID, parentLocalID string, create func(document.RealID) error) error {
	e.mu.Lock()
	if e.creating[localID] {
		e.mu.Unlock()
		return nil
	}
	e.creating[localID] = true
	e.mu.Unlock()

	done := func() {
		e.mu.Lock()
		delete(e.creating, localID)
		e.mu.Unlock()
	}

	if parentID := e.ids.Resolve(parentLocalID); parentID.Known() {
		err := create(parentID)
		done()
		return err
	}

	e.ids.WhenResolved(parentLocalID, func(parentID document.RealID) {
		err := create(parentID)
		done()
		if err != nil {
			e.log.Warn().Err(err).Str("local_id", localID).Msg("deferred create failed")
			e.events <- Event{Kind: EventError, Err: err}
		}
	})
	return nil
}

// deleteRemoved issues delete calls for records present in the last-synced
// snapshot but gone from doc. Not-found responses mean the store already
// caught up and count as success.
func (e *Engine) deleteRemoved(doc document.Document) error {
	e.mu.Lock()
	prev := e.lastSynced
	e.mu.Unlock()

	keepEndpoints := make(map[string]document.Endpoint, len(doc.Endpoints))
	for _, ep := range doc.Endpoints {
		keepEndpoints[ep.LocalID] = ep
	}

	for _, prevEp := range prev.Endpoints {
		cur, kept := keepEndpoints[prevEp.LocalID]
		if !kept {
			if id := e.realIDOf(prevEp.LocalID, prevEp.RealID); id.Known() {
				if err := e.store.DeleteEndpoint(id); err != nil && !api.IsNotFound(err) {
					return err
				}
			}
			continue
		}
		keepFields := make(map[string]bool, len(cur.Fields))
		for _, f := range cur.Fields {
			keepFields[f.LocalID] = true
		}
		for _, prevField := range prevEp.Fields {
			if keepFields[prevField.LocalID] {
				continue
			}
			if id := e.realIDOf(prevField.LocalID, prevField.RealID); id.Known() {
				if err := e.store.DeleteField(id); err != nil && !api.IsNotFound(err) {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine) realIDOf(localID string, known document.RealID) document.RealID {
	if known.Known() {
		return known
	}
	return e.ids.Resolve(localID)
}

// resolveIDs fills in any real ids the registry has learned since the
// snapshot was taken.
func (e *Engine) resolveIDs(doc document.Document) document.Document {
	if !doc.RealID.Known() {
		doc.RealID = e.ids.Resolve(doc.LocalID)
	}
	endpoints := make([]document.Endpoint, len(doc.Endpoints))
	for i, ep := range doc.Endpoints {
		if !ep.RealID.Known() {
			ep.RealID = e.ids.Resolve(ep.LocalID)
		}
		fields := make([]document.Field, len(ep.Fields))
		for j, f := range ep.Fields {
			if !f.RealID.Known() {
				f.RealID = e.ids.Resolve(f.LocalID)
			}
			fields[j] = f
		}
		ep.Fields = fields
		endpoints[i] = ep
	}
	doc.Endpoints = endpoints
	return doc
}
