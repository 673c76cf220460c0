// SPDX-License-Identifier: EPL-2.0

package notation

import (
	"errors"
	"math"
	"testing"
	"time"
)

type want struct {
	hz int
	ms uint32
}

func hzms(events []Event) []want {
	out := make([]want, len(events))
	for i, e := range events {
		out[i] = want{e.Hz(), e.Millis()}
	}
	return out
}

func TestAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score string
		want  []want
	}{
		{"tempo octave sample", "T120 O5 C4 R4 C4", []want{{1047, 500}, {0, 500}, {1047, 500}}},
		{"octave 4 table", "O4 A B C D E F G", []want{{440, 500}, {494, 500}, {523, 500}, {587, 500}, {659, 500}, {698, 500}, {784, 500}}},
		{"lower case", "o4 a r", []want{{440, 500}, {0, 500}}},
		{"eighth", "O4 A8", []want{{440, 250}}},
		{"dotted eighth uses quarter dot unit", "O4 A8.", []want{{440, 500}}},
		{"double dot", "O4 A4..", []want{{440, 875}}},
		{"whole", "O4 A1", []want{{440, 2000}}},
		{"shortest", "A2000", []want{{880, 1}}},
		{"divisor zero ignored", "A0", []want{{880, 500}}},
		{"divisor too large ignored", "A3000", []want{{880, 500}}},
		{"octave up", "O4 A>", []want{{880, 500}}},
		{"octave down", "O4 A<", []want{{220, 500}}},
		{"sharp", "O4 A#", []want{{466, 500}}},
		{"plus is sharp", "O4 A+", []want{{466, 500}}},
		{"flat", "O4 A-", []want{{415, 500}}},
		{"modifiers any order", "O4 A8#. B", []want{{466, 500}, {494, 500}}},
		{"tempo", "T60 O4 A", []want{{440, 1000}}},
		{"tempo out of range", "T500 O4 A T39 A", []want{{440, 500}, {440, 500}}},
		{"octave out of range", "O9 O3 A", []want{{880, 500}}},
		{"octave at end", "A O", []want{{880, 500}}},
		{"end rest", "z", []want{{0, 200}}},
		{"end rest takes modifiers", "z2", []want{{0, 400}}},
		{"absolute", "X1000M250", []want{{1000, 250}}},
		{"absolute lower case", "x440.5m100.9", []want{{441, 100}}},
		{"absolute default duration", "T60 X300", []want{{300, 1000}}},
		{"absolute too low", "X10M5", []want{{0, 5}}},
		{"absolute too high", "X25000M5", []want{{0, 5}}},
		{"absolute then note", "X300M10C", []want{{300, 10}, {1047, 500}}},
		{"reset", "T60 O7 V9 ! C", []want{{1047, 500}}},
		{"blank", " \t\r\n", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := DefaultState()
			events, err := All(tt.score, &st)
			if err != nil {
				t.Fatalf("All(%q) error = %v", tt.score, err)
			}

			got := hzms(events)
			if len(got) != len(tt.want) {
				t.Fatalf("All(%q) = %v, want %v", tt.score, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("All(%q)[%d] = %v, want %v", tt.score, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAll_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		score  string
		before int
	}{
		{"unknown letter", "C Q D", 1},
		{"upper Z is not the end rest", "Z", 0},
		{"tempo without digits", "T C", 0},
		{"volume without digits", "C Vx", 1},
		{"absolute without frequency", "XM100", 0},
		{"absolute without duration", "X440M", 0},
		{"punctuation", "C,D", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := DefaultState()
			events, err := All(tt.score, &st)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("All(%q) error = %v, want %v", tt.score, err, ErrSyntax)
			}
			if len(events) != tt.before {
				t.Errorf("All(%q) returned %d events before the error, want %d", tt.score, len(events), tt.before)
			}
		})
	}
}

func TestState_Controls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score string
		want  State
	}{
		{"T500", State{120, 5, 5}},
		{"T40", State{40, 5, 5}},
		{"T240", State{240, 5, 5}},
		{"V0", State{120, 5, 5}},
		{"V10", State{120, 5, 10}},
		{"V11", State{120, 5, 5}},
		{"O9", State{120, 5, 5}},
		{"O4", State{120, 4, 5}},
		{"O7 T80 V2 !", State{120, 5, 5}},
		{"T99999999999999", State{120, 5, 5}},
	}

	for _, tt := range tests {
		st := DefaultState()
		if _, err := All(tt.score, &st); err != nil {
			t.Fatalf("All(%q) error = %v", tt.score, err)
		}
		if st != tt.want {
			t.Errorf("after %q state = %+v, want %+v", tt.score, st, tt.want)
		}
	}
}

func TestEvent_CarriesVolume(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	events, err := All("V8 C V3 D", &st)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}

	if events[0].Volume != 8 || events[1].Volume != 3 {
		t.Errorf("volumes = %d, %d, want 8, 3", events[0].Volume, events[1].Volume)
	}
}

func TestOctaveRoundTrip(t *testing.T) {
	t.Parallel()

	for _, l := range "ABCDEFG" {
		st := DefaultState()
		plain, _ := All("O5 "+string(l), &st)
		shifted, _ := All("O5 "+string(l)+"<>", &st)

		if math.Abs(plain[0].Frequency-shifted[0].Frequency) > 1e-9 {
			t.Errorf("%c<> = %v, want %v", l, shifted[0].Frequency, plain[0].Frequency)
		}
	}
}

func TestOctaveFrequency(t *testing.T) {
	t.Parallel()

	// the letter table is tuned at octave 4 and each octave doubles it
	tests := []struct {
		score string
		want  float64
	}{
		{"O4 C", 523.25},
		{"O5 C", 1046.5},
		{"O3 C", 261.625},
		{"O4 A", 440},
		{"O5 A", 880},
		{"C", 1046.5},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			t.Parallel()

			st := DefaultState()
			events, err := All(tt.score, &st)
			if err != nil {
				t.Fatalf("All() error = %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("All() = %d events, want 1", len(events))
			}
			if got := events[0].Frequency; math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Frequency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	score := "T90 O6 C8. D#16 E- R2 V7 G4>. X880M120 !A"

	a, b := DefaultState(), DefaultState()
	first, err1 := All(score, &a)
	second, err2 := All(score, &b)

	if err1 != nil || err2 != nil {
		t.Fatalf("All() errors = %v, %v", err1, err2)
	}
	if len(first) != len(second) {
		t.Fatalf("event counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("event %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestParser_Cursor(t *testing.T) {
	t.Parallel()

	st := DefaultState()
	p := NewParser("C D")

	ev, ok, err := p.Next(&st)
	if err != nil || !ok {
		t.Fatalf("Next() = %v, %v, %v", ev, ok, err)
	}
	if p.Remaining() != " D" {
		t.Errorf("Remaining() = %q, want %q", p.Remaining(), " D")
	}

	_, _, _ = p.Next(&st)
	if _, ok, _ := p.Next(&st); ok {
		t.Error("Next() at end ok = true, want false")
	}
	if p.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", p.Pos())
	}
}

func TestEvent_Duration(t *testing.T) {
	t.Parallel()

	ev := newEvent(440, 0.1239, 5)
	if ev.Duration != 123*time.Millisecond {
		t.Errorf("Duration = %v, want 123ms", ev.Duration)
	}

	if ev := newEvent(440, -1, 5); ev.Duration != 0 {
		t.Errorf("negative Duration = %v, want 0", ev.Duration)
	}

	if s := newEvent(0, 0.5, 5).String(); s != "rest 500ms" {
		t.Errorf("String() = %q, want %q", s, "rest 500ms")
	}
}
