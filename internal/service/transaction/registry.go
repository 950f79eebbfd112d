package transaction

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
)

// Snapshot is an immutable view of the registry at one point in time.
// The map is freshly built per mutation and records inside are never
// mutated in place, so subscribers can hold on to snapshots without
// copying.
type Snapshot map[string]*Record

// snapshotTopic is the bus topic snapshots are published on.
const snapshotTopic = "transactions:snapshot"

// Registry is the authoritative in-memory store of transaction
// records. All mutation goes through Create, Update and Remove; each
// mutation publishes exactly one fresh snapshot, in mutation order.
type Registry struct {
	// pubMu serializes mutations and their publications so subscribers
	// observe snapshots in mutation order. mu alone protects the map so
	// reads never wait on subscriber callbacks.
	pubMu sync.Mutex
	mu    sync.RWMutex
	txs   map[string]*Record
	bus   EventBus.Bus
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		txs: make(map[string]*Record),
		bus: EventBus.New(),
	}
}

// Create inserts the record and publishes a new snapshot.
func (r *Registry) Create(rec *Record) {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	r.mu.Lock()
	r.txs[rec.ID] = rec
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.bus.Publish(snapshotTopic, snap)
}

// Update applies mutate to a copy of the stored record, replaces the
// stored record with the copy, refreshes UpdatedAt and publishes a new
// snapshot. No-op (returning false) when the id is absent.
func (r *Registry) Update(id string, mutate func(*Record)) bool {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	r.mu.Lock()
	rec, ok := r.txs[id]
	if !ok {
		r.mu.Unlock()
		return false
	}

	updated := rec.clone()
	mutate(updated)
	updated.UpdatedAt = time.Now()
	r.txs[id] = updated
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.bus.Publish(snapshotTopic, snap)
	return true
}

// Remove deletes the record and publishes a new snapshot. Removal is
// only legal before a hash has been observed; once broadcast, a record
// must reach a terminal status instead, so removal is refused.
func (r *Registry) Remove(id string) bool {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	r.mu.Lock()
	rec, ok := r.txs[id]
	if !ok || rec.ExtrinsicHash != "" {
		r.mu.Unlock()
		return false
	}
	delete(r.txs, id)
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.bus.Publish(snapshotTopic, snap)
	return true
}

// Get returns the record for id.
func (r *Registry) Get(id string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.txs[id]
	return rec, ok
}

// ListInFlight returns all records with status PENDING or PROCESSING.
func (r *Registry) ListInFlight() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var inFlight []*Record
	for _, rec := range r.txs {
		if rec.InFlight() {
			inFlight = append(inFlight, rec)
		}
	}
	return inFlight
}

// Snapshot returns the current state as a fresh snapshot.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Subscribe registers fn to receive every snapshot published after
// this call. Callbacks run synchronously on the mutating goroutine, so
// they must not call back into mutating registry methods.
func (r *Registry) Subscribe(fn func(Snapshot)) error {
	if err := r.bus.Subscribe(snapshotTopic, fn); err != nil {
		return fmt.Errorf("subscribing to registry: %w", err)
	}
	return nil
}

// Unsubscribe removes a previously registered callback.
func (r *Registry) Unsubscribe(fn func(Snapshot)) error {
	if err := r.bus.Unsubscribe(snapshotTopic, fn); err != nil {
		return fmt.Errorf("unsubscribing from registry: %w", err)
	}
	return nil
}

func (r *Registry) snapshotLocked() Snapshot {
	snap := make(Snapshot, len(r.txs))
	for id, rec := range r.txs {
		snap[id] = rec
	}
	return snap
}
