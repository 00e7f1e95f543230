// Package scheduler implements the real-time playback loop (§4.G): a
// single background worker repeatedly queries every installed pattern
// over a rolling time window, sorts the resulting events by onset,
// and sleeps to each one to fire a sink.Play call.
//
// Grounded on the teacher's Model.PlayArpeggio: a mutex guards shared
// state, is always released before any blocking wait or external call,
// and a dedicated goroutine owns the loop — the same discipline §5
// requires here.
package scheduler

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/schollz/cyclo/internal/arc"
	"github.com/schollz/cyclo/internal/control"
	"github.com/schollz/cyclo/internal/pattern"
	"github.com/schollz/cyclo/internal/rational"
	"github.com/schollz/cyclo/internal/sink"
)

// DefaultTempoMsPerCycle is one second per cycle at Δ=1 — the
// scheduler parameter the spec's design notes insist be explicit
// rather than folded ambiguously into the sleep math.
const DefaultTempoMsPerCycle = 1000.0

// DefaultTickCycles is the tick granularity Δ, in cycles.
var DefaultTickCycles = rational.FromInt(1)

// Catalog is the narrow view of a sample catalog dispatch needs: can
// this (name, variation) pair actually be played? Satisfied by
// *catalog.Catalog; a separate interface here keeps the scheduler from
// importing the catalog package for anything but this one check.
type Catalog interface {
	Bytes(name string, n int) ([]byte, bool)
}

// Player holds the channel->pattern map and drives the main loop.
// It is safe to call SetPattern from any goroutine while the loop runs.
type Player struct {
	sink    sink.Sink
	catalog Catalog

	mu       sync.Mutex
	channels map[string]pattern.Pattern[control.Map]
	current  rational.Time

	tick            rational.Time
	tempoMsPerCycle float64

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a Player that dispatches through s. Tick granularity and
// tempo take their package defaults; override with SetTick/SetTempo
// before calling Start if needed.
func New(s sink.Sink) *Player {
	return &Player{
		sink:            s,
		channels:        make(map[string]pattern.Pattern[control.Map]),
		current:         rational.Zero,
		tick:            DefaultTickCycles,
		tempoMsPerCycle: DefaultTempoMsPerCycle,
	}
}

// SetTick overrides the tick granularity Δ. Must be called before Start.
func (p *Player) SetTick(delta rational.Time) {
	p.tick = delta
}

// SetTempo overrides the milliseconds-per-cycle constant. Must be
// called before Start.
func (p *Player) SetTempo(msPerCycle float64) {
	p.tempoMsPerCycle = msPerCycle
}

// SetCatalog installs the sample catalog dispatch checks events
// against before firing the sink: a name the catalog doesn't have, or
// a variation index out of range for it, is dropped per §7 rather than
// sent to the sink. A nil catalog (the default) disables the check.
func (p *Player) SetCatalog(c Catalog) {
	p.catalog = c
}

// SetPattern installs p on channel, replacing whatever played there.
// The replacement takes effect starting with the next tick's query;
// it never interrupts an onset already being dispatched.
func (p *Player) SetPattern(channel string, pat pattern.Pattern[control.Map]) {
	p.mu.Lock()
	p.channels[channel] = pat
	p.mu.Unlock()
}

// ClearPattern removes whatever plays on channel.
func (p *Player) ClearPattern(channel string) {
	p.mu.Lock()
	delete(p.channels, channel)
	p.mu.Unlock()
}

// Start launches the background worker. Calling Start twice on the
// same Player without an intervening Stop is a programmer error.
func (p *Player) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Stop cancels the worker and waits for it to exit.
func (p *Player) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *Player) run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := p.tickOnce(ctx); err != nil {
			return
		}
	}
}

// tickOnce runs one [current, current+Δ) window: query every
// installed pattern, sort the union by onset, sleep to and dispatch
// each one, then sleep the remainder to close out the tick.
func (p *Player) tickOnce(ctx context.Context) error {
	next := p.current.Add(p.tick)
	window := arc.New(p.current, next)

	p.mu.Lock()
	var events []pattern.Event[control.Map]
	for _, pat := range p.channels {
		events = append(events, pat.Query(window)...)
	}
	p.mu.Unlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Part.Start.Less(events[j].Part.Start)
	})

	cursor := p.current
	for _, e := range events {
		onset := e.Part.Start
		waitMs := onset.Sub(cursor).Float64() * p.tempoMsPerCycle
		if waitMs > 0 {
			if err := sleepCtx(ctx, time.Duration(waitMs*float64(time.Millisecond))); err != nil {
				return err
			}
		}
		cursor = onset
		p.dispatch(e)
	}

	remainderMs := next.Sub(cursor).Float64() * p.tempoMsPerCycle
	if remainderMs > 0 {
		if err := sleepCtx(ctx, time.Duration(remainderMs*float64(time.Millisecond))); err != nil {
			return err
		}
	}
	p.current = next
	return nil
}

// dispatch extracts s/n/pan from a ControlMap event and calls the sink.
// Per §7: a missing "s" drops the event; a missing or mistyped "n"
// defaults to 0; a missing or mistyped "pan" defaults to 0.5.
func (p *Player) dispatch(e pattern.Event[control.Map]) {
	sVal, ok := e.Value["s"]
	if !ok {
		return
	}
	name, err := sVal.AsString()
	if err != nil {
		log.Printf("scheduler: dropping event, \"s\" is not a string: %v", err)
		return
	}

	variation := 0
	if nVal, ok := e.Value["n"]; ok {
		if n, err := nVal.AsInt(); err == nil {
			variation = int(n)
		}
	}

	pan := 0.5
	if panVal, ok := e.Value["pan"]; ok {
		if f, err := panVal.AsFloat(); err == nil {
			pan = f
		}
	}

	if p.catalog != nil {
		if _, ok := p.catalog.Bytes(name, variation); !ok {
			log.Printf("scheduler: dropping event, catalog miss for %s:%d", name, variation)
			return
		}
	}

	p.sink.Play(name, variation, pan)
}

// sleepCtx sleeps for d, or returns ctx.Err() if ctx is cancelled
// first — the only suspension point in the loop, and never while the
// mutex is held.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
