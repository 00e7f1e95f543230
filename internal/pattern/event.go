package pattern

import "github.com/schollz/cyclo/internal/arc"

// Event is a timed value: Part is the sub-arc visible inside whatever
// arc it was queried over; Whole, when present, is the event's
// original undivided arc before the query sliced it.
type Event[A any] struct {
	Whole *arc.Arc
	Part  arc.Arc
	Value A
}

// WholeOrPart returns Whole if present, otherwise Part — the onset
// reference ApplyFromLeft and FilterWhen compare against. Onset sorting
// and scheduler dispatch use Part.Start instead.
func (e Event[A]) WholeOrPart() arc.Arc {
	if e.Whole != nil {
		return *e.Whole
	}
	return e.Part
}

// HasOnset reports whether Part.Start matches the start of WholeOrPart
// — i.e. this slice of the query arc contains the event's actual
// trigger point, not just the tail of one that started earlier.
func (e Event[A]) HasOnset() bool {
	return e.Part.Start.Equal(e.WholeOrPart().Start)
}

// WithArcs returns a copy of e with both Whole (if present) and Part
// passed independently through f. Every time-transforming combinator
// is built on this: Whole and Part must be mapped separately, never by
// mapping one and deriving the other.
func (e Event[A]) WithArcs(f func(arc.Arc) arc.Arc) Event[A] {
	out := e
	out.Part = f(e.Part)
	if e.Whole != nil {
		w := f(*e.Whole)
		out.Whole = &w
	}
	return out
}

// MapEventValue returns a copy of e with Value replaced by f(e.Value).
func MapEventValue[A, B any](e Event[A], f func(A) B) Event[B] {
	out := Event[B]{Part: e.Part, Value: f(e.Value)}
	if e.Whole != nil {
		w := *e.Whole
		out.Whole = &w
	}
	return out
}
