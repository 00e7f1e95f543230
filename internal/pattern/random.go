package pattern

import (
	"math/big"
	"math/rand/v2"

	"github.com/schollz/cyclo/internal/rational"
)

// timeRand is a deterministic, pure Time -> [0,1) mapping used by
// degrade_by/undegrade_by. The seeding scheme below is carried over
// bit-for-bit from the reference implementation it was distilled from
// (see DESIGN.md): seed a PRNG with a 32-byte buffer whose first two
// bytes are the low bytes of (t*t/1e6)'s numerator and denominator.
// It is intentionally low-entropy — a documented open question, not a
// bug — and must stay identical across runs so the same pattern text
// always degrades the same notes.
func timeRand(t rational.Time) float64 {
	tt := t.Mul(t).Div(rational.FromInt(1_000_000))
	nb, db := lowBytes(tt)

	var seed [32]byte
	seed[0] = nb
	seed[1] = db

	src := rand.NewChaCha8(seed)
	r := rand.New(src)
	return float64(r.Float32())
}

// lowBytes extracts the low byte of t's numerator and denominator,
// mirroring the original truncate-to-two-bytes seeding scheme. Go's
// big.Int.Mod always returns a non-negative result, so a negative
// numerator still yields a stable byte.
func lowBytes(t rational.Time) (byte, byte) {
	num, den := t.BigRatParts()
	mod := big.NewInt(256)
	n := new(big.Int).Mod(num, mod)
	d := new(big.Int).Mod(den, mod)
	return byte(n.Int64()), byte(d.Int64())
}

// midpoint returns the arithmetic mean of t0 and t1.
func midpoint(t0, t1 rational.Time) rational.Time {
	return t0.Add(t1).Div(rational.FromInt(2))
}
