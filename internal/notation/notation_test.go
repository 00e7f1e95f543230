package notation

import (
	"testing"

	"github.com/schollz/cyclo/internal/arc"
	"github.com/schollz/cyclo/internal/rational"
	"github.com/stretchr/testify/assert"
)

func i(n int64) rational.Time    { return rational.FromInt(n) }
func r(n, d int64) rational.Time { return rational.New(n, d) }
func q(s, e rational.Time) arc.Arc {
	return arc.New(s, e)
}

func TestParseSingleToken(t *testing.T) {
	p, err := Parse("bd")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 1)
	assert.Equal(t, "bd", events[0].Value)
}

func TestParseRestIsSilent(t *testing.T) {
	p, err := Parse("~")
	assert.NoError(t, err)
	assert.Empty(t, p.Query(q(i(0), i(1))))
}

func TestParseSequenceDividesCycle(t *testing.T) {
	p, err := Parse("bd cp hh")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 3)
	want := []string{"bd", "cp", "hh"}
	for idx, e := range events {
		assert.Equal(t, want[idx], e.Value)
		assert.True(t, e.Part.Start.Equal(r(int64(idx), 3)))
		assert.True(t, e.Part.Stop.Equal(r(int64(idx+1), 3)))
	}
}

func TestParseBracketedSubsequence(t *testing.T) {
	p, err := Parse("bd [cp hh]")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 3)
	assert.Equal(t, "bd", events[0].Value)
	assert.True(t, events[0].Part.Start.Equal(i(0)))
	assert.True(t, events[0].Part.Stop.Equal(r(1, 2)))
	assert.Equal(t, "cp", events[1].Value)
	assert.True(t, events[1].Part.Start.Equal(r(1, 2)))
	assert.True(t, events[1].Part.Stop.Equal(r(3, 4)))
	assert.Equal(t, "hh", events[2].Value)
	assert.True(t, events[2].Part.Start.Equal(r(3, 4)))
	assert.True(t, events[2].Part.Stop.Equal(i(1)))
}

func TestParseFastRepeat(t *testing.T) {
	p, err := Parse("bd*2")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 2)
	assert.True(t, events[0].Part.Start.Equal(i(0)))
	assert.True(t, events[0].Part.Stop.Equal(r(1, 2)))
	assert.True(t, events[1].Part.Start.Equal(r(1, 2)))
	assert.True(t, events[1].Part.Stop.Equal(i(1)))
}

func TestParseSlowRepeat(t *testing.T) {
	p, err := Parse("bd/2")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(2)))
	assert.Len(t, events, 1)
	assert.True(t, events[0].Part.Start.Equal(i(0)))
	assert.True(t, events[0].Part.Stop.Equal(i(2)))
}

func TestParseBangRepeatExpandsWithinSequence(t *testing.T) {
	p, err := Parse("bd!3")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(3)))
	assert.Len(t, events, 3)
	for idx, e := range events {
		assert.Equal(t, "bd", e.Value)
		assert.True(t, e.Part.Start.Equal(i(int64(idx))))
	}
}

func TestParseCycleSwitcherAlternatesPerCycle(t *testing.T) {
	p, err := Parse("<bd cp hh>")
	assert.NoError(t, err)
	want := []string{"bd", "cp", "hh", "bd"}
	for cyc := int64(0); cyc < 4; cyc++ {
		events := p.Query(q(i(cyc), i(cyc+1)))
		assert.Len(t, events, 1)
		assert.Equal(t, want[cyc], events[0].Value)
	}
}

func TestParseVariationToken(t *testing.T) {
	p, err := Parse("bd:3")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 1)
	assert.Equal(t, "bd:3", events[0].Value)
}

// TestEndToEndScenario parses "bd <cp*2 bd*2> [cp bd]" and checks the
// exact event sequence it yields across cycles 0-2: the <...> element
// alternates its two branches (cp*2, then bd*2) once per host cycle,
// while "bd" and the bracketed subsequence stay fixed.
func TestEndToEndScenario(t *testing.T) {
	p, err := Parse("bd <cp*2 bd*2> [cp bd]")
	assert.NoError(t, err)

	events0 := p.Query(q(i(0), i(1)))
	want0 := []struct {
		val        string
		start, end rational.Time
	}{
		{"bd", i(0), r(1, 3)},
		{"cp", r(1, 3), r(1, 2)},
		{"cp", r(1, 2), r(2, 3)},
		{"cp", r(2, 3), r(5, 6)},
		{"bd", r(5, 6), i(1)},
	}
	assert.Len(t, events0, len(want0))
	for idx, w := range want0 {
		assert.Equal(t, w.val, events0[idx].Value, "cycle0 index %d", idx)
		assert.True(t, events0[idx].Part.Start.Equal(w.start), "cycle0 index %d start", idx)
		assert.True(t, events0[idx].Part.Stop.Equal(w.end), "cycle0 index %d stop", idx)
	}

	events1 := p.Query(q(i(1), i(2)))
	assert.Len(t, events1, 5)
	assert.Equal(t, "bd", events1[0].Value)
	assert.Equal(t, "bd", events1[1].Value)
	assert.Equal(t, "bd", events1[2].Value)
	assert.Equal(t, "cp", events1[3].Value)
	assert.Equal(t, "bd", events1[4].Value)

	events2 := p.Query(q(i(2), i(3)))
	assert.Len(t, events2, 5)
	assert.Equal(t, "cp", events2[1].Value)
	assert.Equal(t, "cp", events2[2].Value)
}

func TestParseErrorsOnUnbalancedBracket(t *testing.T) {
	_, err := Parse("[bd cp")
	assert.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseErrorsOnEmptyEvent(t *testing.T) {
	_, err := Parse("bd * 2")
	assert.Error(t, err)
}

func TestParseErrorsOnTrailingInput(t *testing.T) {
	_, err := Parse("bd]")
	assert.Error(t, err)
}

func TestParseErrorsOnMissingOperand(t *testing.T) {
	_, err := Parse("bd*")
	assert.Error(t, err)
}

func TestParseWhitespaceToleration(t *testing.T) {
	p, err := Parse("  bd   cp  ")
	assert.NoError(t, err)
	events := p.Query(q(i(0), i(1)))
	assert.Len(t, events, 2)
}
