// Package arc implements the half-open time-interval algebra that the
// pattern engine queries against: cycle splitting, mirroring, and
// intersection.
package arc

import "github.com/schollz/cyclo/internal/rational"

// Arc is the half-open interval [Start, Stop) over exact rational time.
// Start == Stop is legal and denotes a zero-width point query.
type Arc struct {
	Start rational.Time
	Stop  rational.Time
}

// New builds an Arc; it does not validate Start <= Stop, since some
// internal transforms (mirror_arc in particular) momentarily produce
// arcs before the caller re-normalizes them.
func New(start, stop rational.Time) Arc {
	return Arc{Start: start, Stop: stop}
}

// Width returns Stop - Start.
func (a Arc) Width() rational.Time {
	return a.Stop.Sub(a.Start)
}

// IsZeroWidth reports whether Start == Stop.
func (a Arc) IsZeroWidth() bool {
	return a.Start.Equal(a.Stop)
}

// WithTime returns a copy of a with both endpoints passed through f —
// the building block every time-rescaling combinator uses to map an
// Arc through fast/rot without duplicating the field plumbing.
func (a Arc) WithTime(f func(rational.Time) rational.Time) Arc {
	return Arc{Start: f(a.Start), Stop: f(a.Stop)}
}

// Sam returns the cycle anchor of a.Start.
func (a Arc) Sam() rational.Time {
	return rational.Sam(a.Start)
}

// NextSam returns the cycle anchor immediately after a.Start.
func (a Arc) NextSam() rational.Time {
	return rational.Sam(a.Start).Add(rational.FromInt(1))
}

// CyclePos reports how far a.Start sits into its containing cycle.
func (a Arc) CyclePos() rational.Time {
	return rational.CyclePos(a.Start)
}

// Cycles splits a into single-cycle sub-arcs at every integer
// boundary, in order. A degenerate arc (Start >= Stop) with positive
// width requirement yields nothing; see CyclesZW for the zero-width
// exception.
func Cycles(a Arc) []Arc {
	if !a.Start.Less(a.Stop) {
		return nil
	}
	var out []Arc
	cur := a.Start
	for cur.Less(a.Stop) {
		next := rational.Min(rational.Sam(cur).Add(rational.FromInt(1)), a.Stop)
		out = append(out, Arc{Start: cur, Stop: next})
		cur = next
	}
	return out
}

// CyclesZW is Cycles, except a zero-width arc is preserved as a single
// one-element result instead of being discarded — cat() and friends
// need to still dispatch a point query to the right sub-pattern.
func CyclesZW(a Arc) []Arc {
	if a.IsZeroWidth() {
		return []Arc{a}
	}
	return Cycles(a)
}

// MirrorArc reflects a across mid: the point that was `mid - d` from
// mid maps to `mid + d`, and vice versa. Used by rev() to query a
// pattern "backwards" through a whole-cycle window.
func MirrorArc(mid rational.Time, a Arc) Arc {
	return Arc{
		Start: mid.Sub(a.Stop.Sub(mid)),
		Stop:  mid.Add(mid.Sub(a.Start)),
	}
}

// Intersect returns the overlap of a and b. The convention is
// half-open: when the overlap is a single point that equals the Stop
// of a non-degenerate input arc (a boundary-only touch), there is no
// intersection and ok is false. A zero-width arc lying anywhere else
// inside the other arc intersects it at that point.
func Intersect(a, b Arc) (Arc, bool) {
	start := rational.Max(a.Start, b.Start)
	stop := rational.Min(a.Stop, b.Stop)
	if start.Greater(stop) {
		return Arc{}, false
	}
	if start.Equal(stop) {
		// A point at the excluded Stop edge of a non-degenerate arc is
		// not an overlap; any other point overlap is kept.
		if !a.IsZeroWidth() && a.Stop.Equal(start) {
			return Arc{}, false
		}
		if !b.IsZeroWidth() && b.Stop.Equal(start) {
			return Arc{}, false
		}
		return Arc{Start: start, Stop: stop}, true
	}
	return Arc{Start: start, Stop: stop}, true
}

// SubArc is an alias for Intersect kept for readers coming from the
// combinator contracts in the spec, which name both `intersect` and
// `sub_arc` for the same half-open operation.
func SubArc(a, b Arc) (Arc, bool) {
	return Intersect(a, b)
}
