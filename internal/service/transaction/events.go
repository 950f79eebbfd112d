package transaction

import conduiterr "github.com/mrz1836/conduit/pkg/errors"

// EventKind identifies one of the three observable lifecycle
// transitions a submission pipeline can emit.
type EventKind string

// Lifecycle event kinds. For a given attempt, hash-observed always
// precedes success or error; success and error are mutually exclusive
// terminal events.
const (
	EventHashObserved EventKind = "extrinsicHash"
	EventSuccess      EventKind = "success"
	EventError        EventKind = "error"
)

// Event is one lifecycle transition for the owning transaction id.
type Event struct {
	Kind          EventKind
	ID            string
	ExtrinsicHash string
	Errors        []*conduiterr.TxError
}

// eventBuffer sizes pipeline channels so emitters never block: a
// pipeline emits at most two events (hash then success/error).
const eventBuffer = 4

func emitHash(events chan<- Event, id, hash string) {
	events <- Event{Kind: EventHashObserved, ID: id, ExtrinsicHash: hash}
}

func emitSuccess(events chan<- Event, id, hash string) {
	events <- Event{Kind: EventSuccess, ID: id, ExtrinsicHash: hash}
}

func emitError(events chan<- Event, id string, errs ...*conduiterr.TxError) {
	events <- Event{Kind: EventError, ID: id, Errors: errs}
}
