package pattern

import (
	"testing"

	"github.com/schollz/cyclo/internal/control"
	"github.com/stretchr/testify/assert"
)

func TestRotLAndRotRAreInverse(t *testing.T) {
	p := FastCat([]Pattern[string]{Unit("a"), Unit("b"), Unit("c"), Unit("d")})
	a := q(i(0), i(1))
	shifted := RotR(r(1, 4), RotL(r(1, 4), p))
	want := p.Query(a)
	got := shifted.Query(a)
	assert.Equal(t, len(want), len(got))
	for idx := range want {
		assert.Equal(t, want[idx].Value, got[idx].Value)
		assert.True(t, want[idx].Part.Start.Equal(got[idx].Part.Start))
		assert.True(t, want[idx].Part.Stop.Equal(got[idx].Part.Stop))
		assert.True(t, want[idx].Whole.Start.Equal(got[idx].Whole.Start))
		assert.True(t, want[idx].Whole.Stop.Equal(got[idx].Whole.Stop))
	}
}

func TestSoundSplitsNameAndVariation(t *testing.T) {
	sp := FastCat([]Pattern[string]{Unit("bd:2"), Unit("cp")})
	events := Sound(sp).Query(q(i(0), i(1)))
	assert.Len(t, events, 2)

	name, err := events[0].Value["s"].AsString()
	assert.NoError(t, err)
	assert.Equal(t, "bd", name)
	n, err := events[0].Value["n"].AsInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	name2, _ := events[1].Value["s"].AsString()
	assert.Equal(t, "cp", name2)
	n2, _ := events[1].Value["n"].AsInt()
	assert.Equal(t, int64(0), n2)
}

func TestPanWrapsFloat(t *testing.T) {
	events := Pan(Unit(0.25)).Query(q(i(0), i(1)))
	assert.Len(t, events, 1)
	pan, err := events[0].Value["pan"].AsFloat()
	assert.NoError(t, err)
	assert.InDelta(t, 0.25, pan, 1e-9)
}

func TestJuxBySplitsPan(t *testing.T) {
	base := Sound(Unit("bd"))
	juxed := JuxBy(0.8, func(p Pattern[control.Map]) Pattern[control.Map] { return p }, base)
	events := juxed.Query(q(i(0), i(1)))
	assert.Len(t, events, 2)

	pans := map[float64]bool{}
	for _, e := range events {
		pan, err := e.Value["pan"].AsFloat()
		assert.NoError(t, err)
		pans[pan] = true
	}
	assert.True(t, pans[0.8])
	assert.InDelta(t, 0.19999999, nearestTo(pans, 0.2), 1e-6)
}

func nearestTo(vals map[float64]bool, target float64) float64 {
	best := target
	bestDiff := -1.0
	for v := range vals {
		diff := v - target
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			best = v
		}
	}
	return best
}

func TestSometimesByOverlaysBothHalves(t *testing.T) {
	base := Fast(i(8), Unit("x"))
	upper := func(p Pattern[string]) Pattern[string] {
		return Fmap(p, func(s string) string { return "X" })
	}
	result := SometimesBy(Unit(0.5), upper, base).Query(q(i(0), i(1)))
	assert.Len(t, result, 8)
}
