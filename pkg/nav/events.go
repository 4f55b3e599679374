package nav

import "github.com/oakwood-commons/gridnav/pkg/grid"

// Kind names a semantic event emitted to the host.
type Kind string

const (
	KindClickCell         Kind = "click-cell"
	KindShiftClickCell    Kind = "shift-click-cell"
	KindCtrlClickCell     Kind = "ctrl-click-cell"
	KindFocusCell         Kind = "focus-cell"
	KindBlurCell          Kind = "blur-cell"
	KindBlurGrid          Kind = "blur-grid"
	KindValueChanged      Kind = "value-changed"
	KindRangeStartChanged Kind = "range-start-changed"
	KindRangeEndChanged   Kind = "range-end-changed"
	// KindDiagnostic reports a non-fatal error from Dispatch.
	KindDiagnostic Kind = "diagnostic"
)

// Event is what the navigator emits. Cell is set for cell events, Value for
// value and range changes (nil clears the range end), Err for diagnostics.
type Event struct {
	Kind  Kind
	Cell  grid.Cell
	Value any
	Err   error
}

// Emitter receives events. Hosts relay them to rendering or their own models.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f.
func (f EmitterFunc) Emit(ev Event) {
	f(ev)
}

// Recorder is an Emitter that keeps every event in order.
type Recorder struct {
	Events []Event
}

// Emit appends ev.
func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	out := make([]Kind, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Kind
	}
	return out
}

// Last returns the last event of kind k.
func (r *Recorder) Last(k Kind) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == k {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}

type discardEmitter struct{}

func (discardEmitter) Emit(Event) {}
