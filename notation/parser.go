// SPDX-License-Identifier: EPL-2.0

package notation

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// MaxDivisor is the largest accepted duration divisor (C2000).
	MaxDivisor = 2000

	// EndRest is the internal rest the engine appends when a score runs
	// out, so the speaker settles on silence.
	EndRest = 'z'

	endRestSeconds = 0.2

	minAbsoluteHz = 20.0
	maxAbsoluteHz = 20000.0

	// saturation point for integer arguments, well above every valid range
	maxArg = 1 << 24
)

var semitone = math.Pow(2, 1.0/12)

// base frequencies at octave 4
var letters = map[byte]float64{
	'a': 440.00,
	'b': 493.88,
	'c': 523.25,
	'd': 587.33,
	'e': 659.25,
	'f': 698.46,
	'g': 783.99,
	'r': 0,
}

// Parser reads events from a fixed score through a cursor. The text is
// never modified.
type Parser struct {
	text string
	pos  int
}

func NewParser(text string) *Parser {
	return &Parser{text: text}
}

// Pos is the cursor position in the score.
func (p *Parser) Pos() int { return p.pos }

// Remaining is the unparsed tail of the score.
func (p *Parser) Remaining() string { return p.text[p.pos:] }

// Next parses the next playable event, applying any control characters
// before it to st. ok is false once the score is exhausted.
//
// On a syntax error the cursor jumps to the end of the score so the rest is
// discarded, and the returned error wraps ErrSyntax.
func (p *Parser) Next(st *State) (Event, bool, error) {
	ev, end, ok, err := next(p.text, p.pos, st)
	if err != nil {
		p.pos = len(p.text)
		return Event{}, false, err
	}

	p.pos = end
	return ev, ok, nil
}

// All parses the full score from st. It stops at the first syntax error
// and returns the events read before it.
func All(text string, st *State) ([]Event, error) {
	p := NewParser(text)

	var events []Event
	for {
		ev, ok, err := p.Next(st)
		if err != nil {
			return events, err
		}
		if !ok {
			return events, nil
		}
		events = append(events, ev)
	}
}

func next(text string, pos int, st *State) (Event, int, bool, error) {
	for pos < len(text) {
		c := text[pos]

		switch {
		case isSpace(c):
			pos++

		case c == 'O' || c == 'o':
			if pos+1 < len(text) && isDigit(text[pos+1]) {
				st.setOctave(int(text[pos+1] - '0'))
			}
			pos = min(pos+2, len(text))

		case c == 'T' || c == 't':
			v, end, ok := readInt(text, pos+1)
			if !ok {
				return Event{}, pos, false, syntaxError(text, pos)
			}
			st.setTempo(v)
			pos = end

		case c == 'V' || c == 'v':
			v, end, ok := readInt(text, pos+1)
			if !ok {
				return Event{}, pos, false, syntaxError(text, pos)
			}
			st.setVolume(v)
			pos = end

		case c == '!':
			st.Reset()
			pos++

		case c == 'X' || c == 'x':
			return absolute(text, pos, st)

		case c == EndRest:
			return note(text, pos+1, 0, endRestSeconds, st)

		default:
			freq, ok := letters[lower(c)]
			if !ok {
				return Event{}, pos, false, syntaxError(text, pos)
			}
			freq *= math.Pow(2, float64(st.Octave-4))

			return note(text, pos+1, freq, 60.0/float64(st.Tempo), st)
		}
	}

	return Event{}, pos, false, nil
}

// note applies the modifiers that follow a letter.
func note(text string, pos int, freq, seconds float64, st *State) (Event, int, bool, error) {
	dot := seconds

	for pos < len(text) {
		c := text[pos]

		switch {
		case isDigit(c):
			n, end, _ := readInt(text, pos)
			if n >= 1 && n <= MaxDivisor {
				seconds *= 4.0 / float64(n)
			}
			pos = end
			continue

		case c == '.':
			dot /= 2
			seconds += dot

		case c == '>':
			freq *= 2

		case c == '<':
			freq /= 2

		case c == '#' || c == '+':
			freq *= semitone

		case c == '-':
			freq /= semitone

		default:
			return newEvent(freq, seconds, st.Volume), pos, true, nil
		}

		pos++
	}

	return newEvent(freq, seconds, st.Volume), pos, true, nil
}

// absolute parses X<hz>[M<ms>]. No modifiers follow it.
func absolute(text string, pos int, st *State) (Event, int, bool, error) {
	start := pos

	freq, end, ok := readFloat(text, pos+1)
	if !ok {
		return Event{}, start, false, syntaxError(text, start)
	}
	pos = end

	if freq < minAbsoluteHz || freq > maxAbsoluteHz {
		freq = 0
	}

	seconds := 60.0 / float64(st.Tempo)
	if pos < len(text) && (text[pos] == 'M' || text[pos] == 'm') {
		ms, end, ok := readFloat(text, pos+1)
		if !ok {
			return Event{}, start, false, syntaxError(text, pos)
		}
		seconds = ms / 1000
		pos = end
	}

	return newEvent(freq, seconds, st.Volume), pos, true, nil
}

func syntaxError(text string, pos int) error {
	return fmt.Errorf("%w: unexpected %q at %d in %q", ErrSyntax, text[pos], pos, text[pos:])
}

// readInt reads a run of decimal digits, saturating at maxArg.
func readInt(text string, pos int) (int, int, bool) {
	start := pos
	v := 0
	for pos < len(text) && isDigit(text[pos]) {
		if v < maxArg {
			v = v*10 + int(text[pos]-'0')
		}
		pos++
	}
	return min(v, maxArg), pos, pos > start
}

// readFloat reads digits with at most one decimal point.
func readFloat(text string, pos int) (float64, int, bool) {
	start := pos
	digits, dot := 0, false
	for pos < len(text) {
		c := text[pos]
		if isDigit(c) {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		pos++
	}

	if digits == 0 {
		return 0, start, false
	}

	v, err := strconv.ParseFloat(text[start:pos], 64)
	if err != nil {
		return 0, start, false
	}
	return v, pos, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
