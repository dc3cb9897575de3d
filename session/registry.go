// Package session tracks live crawl sessions and relays their progress
// events to attached sinks.
package session

import (
	"sync"
	"time"

	"github.com/proplens/proplens/models"
)

// Sink receives progress events for one crawl session.
type Sink interface {
	Send(ev models.ProgressEvent)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(ev models.ProgressEvent)

func (f SinkFunc) Send(ev models.ProgressEvent) { f(ev) }

// entry is one registered session: its sink and when the batch started.
type entry struct {
	sink      Sink
	startedAt time.Time
}

// Registry maps session identifiers to live progress sinks. An entry exists
// exactly for the lifetime of its batch; it is inserted when the batch
// begins and deleted when the batch finishes, success or failure.
//
// Entries are never mutated in place, only replaced wholesale, so the
// sync.Map insert/lookup/delete semantics are the only synchronization
// needed.
type Registry struct {
	sessions sync.Map // session id -> *entry
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register attaches a sink under the given session id, replacing any
// previous registration.
func (r *Registry) Register(id string, sink Sink) {
	r.sessions.Store(id, &entry{sink: sink, startedAt: time.Now()})
}

// Remove deletes the session. Subsequent Emit calls for the id are no-ops.
func (r *Registry) Remove(id string) {
	r.sessions.Delete(id)
}

// StartedAt reports when the session was registered.
func (r *Registry) StartedAt(id string) (time.Time, bool) {
	v, ok := r.sessions.Load(id)
	if !ok {
		return time.Time{}, false
	}
	return v.(*entry).startedAt, true
}

// Emit forwards the event to the session's sink. If the session is absent
// (already finished or never registered) the call is a silent no-op: the
// emitter holds a non-owning reference and must never assume the sink is
// still attached.
func (r *Registry) Emit(id string, ev models.ProgressEvent) {
	v, ok := r.sessions.Load(id)
	if !ok {
		return
	}
	ev.SessionID = id
	v.(*entry).sink.Send(ev)
}
