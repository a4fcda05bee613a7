package stream

import "github.com/arloliu/zipflow/manifest"

// Event is the closed set of notifications a Sink receives while an
// archive is encoded. Delivery is synchronous and in order; a sink that
// panics does so on the consumer's pull path.
type Event interface {
	isEvent()
}

// StreamStarted fires once, on the first pull.
type StreamStarted struct {
	StreamID string
}

// EntryStarted fires when an entry's local header has been emitted.
type EntryStarted struct {
	Entry manifest.Entry
}

// EntryUpdated fires after each payload chunk, carrying the running totals.
type EntryUpdated struct {
	Entry manifest.Entry
	Info  EntryInfo
}

// EntryCompleted fires when an entry's data descriptor has been emitted.
type EntryCompleted struct {
	Entry manifest.Entry
}

// EntryFailed fires when an entry cannot start or its payload fails.
type EntryFailed struct {
	Entry manifest.Entry
	Err   error
}

// StreamEnded fires last; Err is nil on a clean finish.
type StreamEnded struct {
	Err error
}

func (StreamStarted) isEvent()  {}
func (EntryStarted) isEvent()   {}
func (EntryUpdated) isEvent()   {}
func (EntryCompleted) isEvent() {}
func (EntryFailed) isEvent()    {}
func (StreamEnded) isEvent()    {}

// Sink receives events. A nil Sink disables delivery.
type Sink func(Event)
