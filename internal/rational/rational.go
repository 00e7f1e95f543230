// Package rational implements exact, arbitrary-precision musical time.
//
// Onsets produced by fast/cat-style time rescaling must round-trip
// exactly; a float64 cycle position drifts after a handful of nested
// fast() calls, which is audible as notation-dependent jitter. big.Rat
// gives us that for free.
package rational

import (
	"fmt"
	"math/big"
)

// Time is an exact rational number of cycles.
type Time struct {
	r *big.Rat
}

// Zero is the origin of the time line.
var Zero = FromInt(0)

// FromInt builds a whole-cycle Time.
func FromInt(n int64) Time {
	return Time{r: new(big.Rat).SetInt64(n)}
}

// New builds num/den, reduced to lowest terms.
func New(num, den int64) Time {
	return Time{r: big.NewRat(num, den)}
}

// FromFloat approximates f as an exact rational. Only used at the
// mini-notation boundary where a decimal literal like "1.5" is parsed;
// internal pattern math never goes through float64.
func FromFloat(f float64) Time {
	r := new(big.Rat)
	r.SetFloat64(f)
	if r == nil {
		return Zero
	}
	return Time{r: r}
}

func (t Time) ensure() *big.Rat {
	if t.r == nil {
		return new(big.Rat)
	}
	return t.r
}

// Add returns t + o.
func (t Time) Add(o Time) Time {
	return Time{r: new(big.Rat).Add(t.ensure(), o.ensure())}
}

// Sub returns t - o.
func (t Time) Sub(o Time) Time {
	return Time{r: new(big.Rat).Sub(t.ensure(), o.ensure())}
}

// Mul returns t * o.
func (t Time) Mul(o Time) Time {
	return Time{r: new(big.Rat).Mul(t.ensure(), o.ensure())}
}

// Div returns t / o. Division by zero returns Zero; callers that rely
// on fast(0, p) being silence never reach this path because fast
// special-cases a zero rate before dividing.
func (t Time) Div(o Time) Time {
	if o.ensure().Sign() == 0 {
		return Zero
	}
	return Time{r: new(big.Rat).Quo(t.ensure(), o.ensure())}
}

// Neg returns -t.
func (t Time) Neg() Time {
	return Time{r: new(big.Rat).Neg(t.ensure())}
}

// Cmp returns -1, 0, or 1 as t is less than, equal to, or greater than o.
func (t Time) Cmp(o Time) int {
	return t.ensure().Cmp(o.ensure())
}

// Less reports whether t < o.
func (t Time) Less(o Time) bool { return t.Cmp(o) < 0 }

// LessEq reports whether t <= o.
func (t Time) LessEq(o Time) bool { return t.Cmp(o) <= 0 }

// Greater reports whether t > o.
func (t Time) Greater(o Time) bool { return t.Cmp(o) > 0 }

// GreaterEq reports whether t >= o.
func (t Time) GreaterEq(o Time) bool { return t.Cmp(o) >= 0 }

// Equal reports whether t == o.
func (t Time) Equal(o Time) bool { return t.Cmp(o) == 0 }

// Min returns the smaller of t and o.
func Min(t, o Time) Time {
	if t.Less(o) {
		return t
	}
	return o
}

// Max returns the larger of t and o.
func Max(t, o Time) Time {
	if t.Greater(o) {
		return t
	}
	return o
}

// Floor returns the greatest integer cycle number <= t ("sam").
func Floor(t Time) int64 {
	num := t.ensure().Num()
	den := t.ensure().Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m) // Euclidean division: m is always >= 0
	return q.Int64()
}

// Sam returns the start of the cycle containing t, as a Time.
func Sam(t Time) Time {
	return FromInt(Floor(t))
}

// CyclePos returns t minus the start of its containing cycle, in [0, 1).
func CyclePos(t Time) Time {
	return t.Sub(Sam(t))
}

// Mod returns the floored modulo of n by m (result has the sign of m,
// and is always in [0, m) for positive m) — used for cat's cyc-mod-n
// indexing so negative cycle numbers wrap the way the spec requires.
func Mod(n, m int64) int64 {
	r := n % m
	if (r < 0 && m > 0) || (r > 0 && m < 0) {
		r += m
	}
	return r
}

// FloorDiv returns the flooring (not truncating) integer division of n by m.
func FloorDiv(n, m int64) int64 {
	q := n / m
	if (n%m != 0) && ((n < 0) != (m < 0)) {
		q--
	}
	return q
}

// BigRatParts exposes t's reduced numerator and denominator. It exists
// for the one call site (the mini-notation-era time_rand seed, see
// pattern.timeRand) that genuinely needs to fish bytes out of the
// underlying big.Rat; nothing else in the engine should reach past the
// Time abstraction.
func (t Time) BigRatParts() (num, den *big.Int) {
	return t.ensure().Num(), t.ensure().Denom()
}

// Float64 returns an approximate float64 view of t, used only for
// display (status UI, logging) — never for arithmetic.
func (t Time) Float64() float64 {
	f, _ := t.ensure().Float64()
	return f
}

func (t Time) String() string {
	return t.ensure().RatString()
}

// GoString supports %#v-style debug printing in logs.
func (t Time) GoString() string {
	return fmt.Sprintf("rational.Time(%s)", t.String())
}
