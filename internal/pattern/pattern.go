// Package pattern implements the core pattern calculus: a Pattern[A]
// is a pure function from a query Arc to a finite, ordered sequence of
// Event[A]. Every combinator here preserves the contract that each
// returned event's Part lies inside the query arc.
package pattern

import (
	"sort"

	"github.com/schollz/cyclo/internal/arc"
	"github.com/schollz/cyclo/internal/rational"
)

// Pattern is a pure, stateless function from a query arc to the
// events active during it. Patterns are plain Go func values: they are
// already immutable and safe to share across goroutines, which is why
// the engine never wraps them in a struct with extra bookkeeping.
type Pattern[A any] func(arc.Arc) []Event[A]

// Query runs p over a — a thin, named wrapper kept for readability at
// call sites that would otherwise read like `p(a)`.
func (p Pattern[A]) Query(a arc.Arc) []Event[A] {
	if p == nil {
		return nil
	}
	return p(a)
}

// Silence is the pattern that never emits an event.
func Silence[A any]() Pattern[A] {
	return func(arc.Arc) []Event[A] { return nil }
}

var oneCycle = rational.FromInt(1)

// Unit lifts a plain value into a pattern with one event per cycle: in
// every integer-aligned cycle overlapping the query, the whole is
// exactly that cycle and the part is the whole clipped to the query.
// A zero-width query produces at most one zero-width event, when the
// query point falls exactly on a cycle boundary.
func Unit[A any](v A) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		if q.IsZeroWidth() {
			if !q.Start.Equal(rational.Sam(q.Start)) {
				return nil
			}
			whole := arc.New(rational.Sam(q.Start), rational.Sam(q.Start).Add(oneCycle))
			return []Event[A]{{Whole: &whole, Part: q, Value: v}}
		}
		var out []Event[A]
		for _, cyc := range arc.Cycles(q) {
			sam := cyc.Sam()
			whole := arc.New(sam, sam.Add(oneCycle))
			part, ok := arc.Intersect(whole, q)
			if !ok {
				continue
			}
			out = append(out, Event[A]{Whole: &whole, Part: part, Value: v})
		}
		return out
	}
}

// sortByPartStart stable-sorts events by Part.Start, the ordering
// every combinator contract (§8 sort stability) requires of stack,
// rev, and the scheduler's own dispatch order.
func sortByPartStart[A any](events []Event[A]) []Event[A] {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Part.Start.Less(events[j].Part.Start)
	})
	return events
}
