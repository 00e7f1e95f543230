package pattern

import (
	"github.com/schollz/cyclo/internal/arc"
	"github.com/schollz/cyclo/internal/control"
	"github.com/schollz/cyclo/internal/rational"
)

var half = rational.New(1, 2)

// Fmap applies f to every event's value, leaving timing untouched.
func Fmap[A, B any](p Pattern[A], f func(A) B) Pattern[B] {
	return func(q arc.Arc) []Event[B] {
		in := p.Query(q)
		out := make([]Event[B], len(in))
		for i, e := range in {
			out[i] = MapEventValue(e, f)
		}
		return out
	}
}

// Fast scales time by r: querying fast(r,p) on [s,e) queries p on
// [s*r, e*r) and divides the results' Part/Whole back down by r.
// r == 0 is silence; r < 0 behaves identically to rev(fast(-r,p)).
func Fast[A any](r rational.Time, p Pattern[A]) Pattern[A] {
	if r.Equal(rational.Zero) {
		return Silence[A]()
	}
	if r.Less(rational.Zero) {
		return Rev(Fast(r.Neg(), p))
	}
	return func(q arc.Arc) []Event[A] {
		scaled := q.WithTime(func(t rational.Time) rational.Time { return t.Mul(r) })
		events := p.Query(scaled)
		out := make([]Event[A], len(events))
		for i, e := range events {
			out[i] = e.WithArcs(func(a arc.Arc) arc.Arc {
				return a.WithTime(func(t rational.Time) rational.Time { return t.Div(r) })
			})
		}
		return out
	}
}

// Stack plays every pattern in ps simultaneously: the union of their
// events, stable-sorted by Part.Start.
func Stack[A any](ps []Pattern[A]) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		var out []Event[A]
		for _, p := range ps {
			out = append(out, p.Query(q)...)
		}
		return sortByPartStart(out)
	}
}

// Cat plays one sub-pattern per cycle, indexing by cyc mod len(ps)
// with mathematical (always non-negative) modulo for negative cycles.
// Each recurrence of a given sub-pattern advances its own internal
// cycle counter rather than replaying its cycle 0 every time.
func Cat[A any](ps []Pattern[A]) Pattern[A] {
	n := int64(len(ps))
	if n == 0 {
		return Silence[A]()
	}
	return func(q arc.Arc) []Event[A] {
		var out []Event[A]
		for _, sub := range arc.CyclesZW(q) {
			cyc := rational.Floor(sub.Start)
			i := rational.Mod(cyc, n)
			offset := cyc - rational.FloorDiv(cyc-i, n)
			offsetT := rational.FromInt(offset)

			translated := sub.WithTime(func(t rational.Time) rational.Time { return t.Sub(offsetT) })
			events := ps[i].Query(translated)
			for _, e := range events {
				out = append(out, e.WithArcs(func(a arc.Arc) arc.Arc {
					return a.WithTime(func(t rational.Time) rational.Time { return t.Add(offsetT) })
				}))
			}
		}
		return sortByPartStart(out)
	}
}

// FastCat packs len(ps) patterns into a single cycle: fast(len(ps), cat(ps)).
func FastCat[A any](ps []Pattern[A]) Pattern[A] {
	return Fast(rational.FromInt(int64(len(ps))), Cat(ps))
}

// Rev reverses p within every whole cycle of the query. See
// DESIGN.md for the absolute/relative whole transform this relies on.
func Rev[A any](p Pattern[A]) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		var out []Event[A]
		for _, sub := range arc.Cycles(q) {
			mid := sub.Sam().Add(half)
			mirrored := arc.MirrorArc(mid, sub)
			for _, e := range p.Query(mirrored) {
				newPart := arc.MirrorArc(mid, e.Part)
				var newWhole *arc.Arc
				if e.Whole != nil {
					leftGap := e.Part.Start.Sub(e.Whole.Start)
					rightGap := e.Whole.Stop.Sub(e.Part.Stop)
					w := arc.New(newPart.Start.Sub(rightGap), newPart.Stop.Add(leftGap))
					newWhole = &w
				}
				out = append(out, Event[A]{Whole: newWhole, Part: newPart, Value: e.Value})
			}
		}
		return sortByPartStart(out)
	}
}

// RotL shifts p earlier in time by t: it queries p on the query arc
// translated by +t and subtracts t back off the results.
func RotL[A any](t rational.Time, p Pattern[A]) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		shiftedQuery := q.WithTime(func(x rational.Time) rational.Time { return x.Add(t) })
		events := p.Query(shiftedQuery)
		out := make([]Event[A], len(events))
		for i, e := range events {
			out[i] = e.WithArcs(func(a arc.Arc) arc.Arc {
				return a.WithTime(func(x rational.Time) rational.Time { return x.Sub(t) })
			})
		}
		return out
	}
}

// RotR shifts p later in time by t.
func RotR[A any](t rational.Time, p Pattern[A]) Pattern[A] {
	return RotL(t.Neg(), p)
}

// InnerJoin flattens a pattern of patterns: for every event of the
// outer pattern, its inner pattern is queried on the intersection of
// the outer query arc and that event's Part. The outer pattern decides
// *when* to listen; the inner supplies *what*.
func InnerJoin[A any](pp Pattern[Pattern[A]]) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		var out []Event[A]
		for _, oe := range pp.Query(q) {
			restricted, ok := arc.Intersect(q, oe.Part)
			if !ok {
				continue
			}
			for _, ie := range oe.Value.Query(restricted) {
				if _, ok := arc.Intersect(restricted, ie.Part); !ok {
					continue
				}
				out = append(out, ie)
			}
		}
		return sortByPartStart(out)
	}
}

// TParam is the standard lifting that lets a combinator which
// primitively expects a scalar T instead accept a time-varying
// Pattern[T]: it turns tv into a pattern of patterns (one instantiation
// of f per tv event) and flattens with InnerJoin.
func TParam[T, A any](f func(T, Pattern[A]) Pattern[A], tv Pattern[T], p Pattern[A]) Pattern[A] {
	pp := func(q arc.Arc) []Event[Pattern[A]] {
		events := tv.Query(q)
		out := make([]Event[Pattern[A]], len(events))
		for i, te := range events {
			out[i] = MapEventValue(te, func(t T) Pattern[A] { return f(t, p) })
		}
		return out
	}
	return InnerJoin[A](pp)
}

// ApplyFromLeft is the canonical left-biased applicative: for each lhs
// event (in onset order), it finds the latest rhs event whose onset is
// <= lhs.Part.Start and not past lhs.Part.Stop, combines the two
// values with f, and emits the result at lhs's own timing. An lhs
// event with no surviving rhs pairing is dropped.
func ApplyFromLeft[A, B, C any](f func(A, B) C, lhs Pattern[A], rhs Pattern[B]) Pattern[C] {
	return func(q arc.Arc) []Event[C] {
		lhsEvents := sortByPartStart(lhs.Query(q))
		rhsEvents := sortByPartStart(rhs.Query(q))

		var out []Event[C]
		for _, le := range lhsEvents {
			var best *Event[B]
			for i := range rhsEvents {
				onset := rhsEvents[i].WholeOrPart().Start
				if onset.Greater(le.Part.Start) {
					continue
				}
				if onset.Greater(le.Part.Stop) {
					continue
				}
				if best == nil || onset.Greater(best.WholeOrPart().Start) {
					best = &rhsEvents[i]
				}
			}
			if best == nil {
				continue
			}
			out = append(out, Event[C]{Whole: le.Whole, Part: le.Part, Value: f(le.Value, best.Value)})
		}
		return out
	}
}

// Superimpose plays p together with f(p).
func Superimpose[A any](f func(Pattern[A]) Pattern[A], p Pattern[A]) Pattern[A] {
	return Stack([]Pattern[A]{p, f(p)})
}

// Overlay plays a together with b.
func Overlay[A any](a, b Pattern[A]) Pattern[A] {
	return Stack([]Pattern[A]{a, b})
}

// FilterWhen retains only events whose WholeOrPart().Start satisfies pred.
func FilterWhen[A any](pred func(rational.Time) bool, p Pattern[A]) Pattern[A] {
	return func(q arc.Arc) []Event[A] {
		events := p.Query(q)
		out := make([]Event[A], 0, len(events))
		for _, e := range events {
			if pred(e.WholeOrPart().Start) {
				out = append(out, e)
			}
		}
		return out
	}
}

// inWindow reports whether cyclePos lies in the half-open [s,e)
// sub-window of a cycle.
func inWindow(s, e rational.Time) func(rational.Time) bool {
	return func(t rational.Time) bool {
		pos := rational.CyclePos(t)
		return pos.GreaterEq(s) && pos.Less(e)
	}
}

// Within applies f(p) during the part of each cycle that falls inside
// sub (a [start,stop) window measured in cycle-relative position), and
// plays plain p everywhere else, stacking the two.
func Within[A any](sub arc.Arc, f func(Pattern[A]) Pattern[A], p Pattern[A]) Pattern[A] {
	inside := FilterWhen(inWindow(sub.Start, sub.Stop), f(p))
	outside := FilterWhen(func(t rational.Time) bool { return !inWindow(sub.Start, sub.Stop)(t) }, p)
	return Stack([]Pattern[A]{inside, outside})
}

// Chunk cycles f across n equal slices of the cycle, one slice per
// cycle of the query: cycle k applies f within slice (k mod n), and
// leaves the rest of that cycle as plain p.
func Chunk[A any](n int64, f func(Pattern[A]) Pattern[A], p Pattern[A]) Pattern[A] {
	if n <= 0 {
		return p
	}
	slices := make([]Pattern[A], n)
	width := rational.New(1, n)
	for i := int64(0); i < n; i++ {
		lo := width.Mul(rational.FromInt(i))
		hi := width.Mul(rational.FromInt(i + 1))
		slices[i] = Within(arc.New(lo, hi), f, p)
	}
	return Cat(slices)
}

// Off superimposes f(rot_r(t,p)) over p, where t is drawn from tp via
// TParam — the standard "echo" combinator.
func Off[A any](tp Pattern[rational.Time], f func(Pattern[A]) Pattern[A], p Pattern[A]) Pattern[A] {
	lifted := func(t rational.Time, pp Pattern[A]) Pattern[A] { return f(RotR(t, pp)) }
	shifted := TParam(lifted, tp, p)
	return Stack([]Pattern[A]{p, shifted})
}

// DegradeBy drops events with probability probP, using a pseudorandom
// draw seeded by the midpoint of the query arc it is asked for — not
// each event's own arc — so every event queried together in one
// restricted arc (one cycle, typically) shares the same draw. probP is
// itself a pattern, lifted via TParam/InnerJoin exactly like any other
// time-varying combinator parameter: an event survives iff the draw is
// > prob.
func DegradeBy[A any](probP Pattern[float64], p Pattern[A]) Pattern[A] {
	lifted := func(prob float64, pp Pattern[A]) Pattern[A] {
		return func(q arc.Arc) []Event[A] {
			seed := timeRand(midpoint(q.Start, q.Stop))
			events := pp.Query(q)
			out := make([]Event[A], 0, len(events))
			for _, e := range events {
				if seed > prob {
					out = append(out, e)
				}
			}
			return out
		}
	}
	return TParam(lifted, probP, p)
}

// UndegradeBy is the exact complement of DegradeBy for the same probP
// and the same underlying draw: an event survives iff its draw is <= prob.
func UndegradeBy[A any](probP Pattern[float64], p Pattern[A]) Pattern[A] {
	lifted := func(prob float64, pp Pattern[A]) Pattern[A] {
		return func(q arc.Arc) []Event[A] {
			seed := timeRand(midpoint(q.Start, q.Stop))
			events := pp.Query(q)
			out := make([]Event[A], 0, len(events))
			for _, e := range events {
				if seed <= prob {
					out = append(out, e)
				}
			}
			return out
		}
	}
	return TParam(lifted, probP, p)
}

// SometimesBy applies f to a probP-sized fraction of events and leaves
// the rest untouched, overlaying both halves back together.
func SometimesBy[A any](probP Pattern[float64], f func(Pattern[A]) Pattern[A], p Pattern[A]) Pattern[A] {
	return Overlay(DegradeBy(probP, p), UndegradeBy(probP, f(p)))
}

// JuxBy stereo-splits a ControlMap pattern: f(p) plays panned toward n,
// plain p plays panned toward its mirror 1-n.
func JuxBy(n float64, f func(Pattern[control.Map]) Pattern[control.Map], p Pattern[control.Map]) Pattern[control.Map] {
	nPattern := Unit(n)
	left := ApplyFromLeft(func(cm control.Map, pan float64) control.Map {
		return cm.With("pan", control.Float(pan))
	}, f(p), nPattern)
	right := ApplyFromLeft(func(cm control.Map, pan float64) control.Map {
		return cm.With("pan", control.Float(1-pan))
	}, p, nPattern)
	return Stack([]Pattern[control.Map]{left, right})
}
