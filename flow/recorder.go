package flow

import (
	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/logger"
)

// Recorder keeps every notification it receives, in order.
type Recorder struct {
	EventFunc
	Events []Event
}

func NewRecorder() *Recorder {
	r := &Recorder{}
	r.EventFunc = func(e Event) { r.Events = append(r.Events, e) }
	return r
}

// Kinds returns the kinds of all recorded events.
func (r *Recorder) Kinds() []EventKind {
	out := make([]EventKind, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Kind)
	}
	return out
}

// ConstructKinds is Kinds without the function and statement events.
func (r *Recorder) ConstructKinds() []EventKind {
	var out []EventKind
	for _, e := range r.Events {
		if !e.Kind.IsStructural() {
			out = append(out, e.Kind)
		}
	}
	return out
}

// EventsFor returns the events about a single node.
func (r *Recorder) EventsFor(id decl.NodeID) (out []Event) {
	for _, e := range r.Events {
		if e.Node != nil && e.Node.ID() == id {
			out = append(out, e)
		}
	}
	return
}

func (r *Recorder) Reset() {
	r.Events = nil
}

// NewLoggingSink logs every notification at debug level.
func NewLoggingSink(log logger.Logger) Sink {
	return EventFunc(func(e Event) {
		if log.Enabled(logger.LogLevelDebug) {
			log.Debug("%s", e)
		}
	})
}
