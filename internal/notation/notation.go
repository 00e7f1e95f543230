// Package notation compiles the mini-notation concrete syntax (§6.3)
// into a Pattern[string] built from the combinator library in
// internal/pattern. No parser-combinator library appears anywhere in
// the example corpus for this kind of small grammar, so the parser is
// a hand-written recursive-descent reader over the input string — see
// DESIGN.md.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schollz/cyclo/internal/pattern"
	"github.com/schollz/cyclo/internal/rational"
)

// ParseError reports a malformed mini-notation input.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("notation: %s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

// Rest is the mini-notation token for silence.
const Rest = "~"

// Parse compiles text into a Pattern[string] per the grammar in §6.3,
// or returns a *ParseError describing where compilation failed.
func Parse(text string) (pattern.Pattern[string], error) {
	p := &parser{input: text}
	p.skipSpace()
	seq, err := p.parseSequence(0)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected trailing input %q", p.input[p.pos:])
	}
	return seq, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Input: p.input, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isStringChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == ':' || b == '~'
}

// closers maps an opening delimiter to the rune that ends its sequence,
// so parseSequence knows when to stop without needing a grammar
// production per bracket kind.
var closers = map[byte]byte{
	'[': ']',
	'<': '>',
	'{': '}',
	0:   0, // top level: no closer, read to EOF
}

// parseSequence reads a run of WS-separated events until it hits the
// closer for `open` (or EOF at the top level), and compiles the whole
// run into fast(n, cat(parts)) — a row of n events fits in one cycle.
func (p *parser) parseSequence(open byte) (pattern.Pattern[string], error) {
	closer := closers[open]
	var parts []pattern.Pattern[string]
	for {
		p.skipSpace()
		if p.eof() || p.peek() == closer {
			break
		}
		ev, err := p.parseEvent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, ev)
	}
	if len(parts) == 0 {
		return pattern.Silence[string](), nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return pattern.Fast(rational.FromInt(int64(len(parts))), pattern.Cat(parts)), nil
}

// parseEvent reads one raw_event and, if followed directly by an
// operator, compiles the modifier too.
func (p *parser) parseEvent() (pattern.Pattern[string], error) {
	inner, err := p.parseRawEvent()
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return inner, nil
	}
	switch p.peek() {
	case '*', '/', '!':
		op := p.peek()
		p.pos++
		k, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		switch op {
		case '*':
			return pattern.Fast(k, inner), nil
		case '/':
			return pattern.Fast(rational.FromInt(1).Div(k), inner), nil
		case '!':
			n := rational.Floor(k)
			if n < 1 {
				return nil, p.errorf("!%v must repeat at least once", k)
			}
			reps := make([]pattern.Pattern[string], n)
			for i := range reps {
				reps[i] = inner
			}
			return pattern.Cat(reps), nil
		}
	}
	return inner, nil
}

func (p *parser) parseRawEvent() (pattern.Pattern[string], error) {
	if p.eof() {
		return nil, p.errorf("expected an event, found end of input")
	}
	switch p.peek() {
	case '[':
		p.pos++
		inner, err := p.parseSequence('[')
		if err != nil {
			return nil, err
		}
		if p.peek() != ']' {
			return nil, p.errorf("expected closing ']'")
		}
		p.pos++
		return inner, nil
	case '<':
		p.pos++
		cycled, err := p.parseCycleBody()
		if err != nil {
			return nil, err
		}
		if p.peek() != '>' {
			return nil, p.errorf("expected closing '>'")
		}
		p.pos++
		return cycled, nil
	case '{':
		p.pos++
		inner, err := p.parseSequence('{')
		if err != nil {
			return nil, err
		}
		if p.peek() != '}' {
			return nil, p.errorf("expected closing '}'")
		}
		p.pos++
		return inner, nil
	default:
		return p.parseString()
	}
}

// parseCycleBody reads the space-separated elements of a <...> cycle
// switcher and compiles them to cat(parts) — one element per cycle,
// rather than the fast(n, cat(parts)) a plain sequence would use.
func (p *parser) parseCycleBody() (pattern.Pattern[string], error) {
	var parts []pattern.Pattern[string]
	for {
		p.skipSpace()
		if p.eof() || p.peek() == '>' {
			break
		}
		ev, err := p.parseEvent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, ev)
	}
	if len(parts) == 0 {
		return nil, p.errorf("empty cycle '<>'")
	}
	return pattern.Cat(parts), nil
}

func (p *parser) parseString() (pattern.Pattern[string], error) {
	start := p.pos
	for !p.eof() && isStringChar(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return nil, p.errorf("unexpected character %q", string(p.peek()))
	}
	token := p.input[start:p.pos]
	if token == Rest {
		return pattern.Silence[string](), nil
	}
	return pattern.Unit(token), nil
}

// parseNumber reads a decimal literal (the `number` production) and
// returns it as an exact rational Time.
func (p *parser) parseNumber() (rational.Time, error) {
	start := p.pos
	for !p.eof() && (isDigit(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	if p.pos == start {
		return rational.Zero, p.errorf("expected a number after operator")
	}
	lit := p.input[start:p.pos]
	if !strings.Contains(lit, ".") {
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return rational.Zero, p.errorf("invalid number %q: %v", lit, err)
		}
		return rational.FromInt(n), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return rational.Zero, p.errorf("invalid number %q: %v", lit, err)
	}
	return rational.FromFloat(f), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
