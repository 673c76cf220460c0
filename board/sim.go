// SPDX-License-Identifier: EPL-2.0

package board

import "sync"

// SimLEDs keeps the strip in memory.
type SimLEDs struct {
	mu         sync.Mutex
	pending    []Color
	shown      []Color
	brightness uint8
	shows      int
}

func NewSimLEDs(n int) *SimLEDs {
	return &SimLEDs{
		pending: make([]Color, n),
		shown:   make([]Color, n),
	}
}

func (s *SimLEDs) Len() int { return len(s.pending) }

func (s *SimLEDs) SetPixel(index int, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index >= 0 && index < len(s.pending) {
		s.pending[index] = c
	}
}

func (s *SimLEDs) SetBrightness(b uint8) {
	s.mu.Lock()
	s.brightness = b
	s.mu.Unlock()
}

func (s *SimLEDs) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.shown, s.pending)
	s.shows++
	return nil
}

// Shown returns what the strip displays.
func (s *SimLEDs) Shown() []Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Color(nil), s.shown...)
}

func (s *SimLEDs) Brightness() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

// SimInputs is a front panel set from code.
type SimInputs struct {
	mu       sync.Mutex
	switches [Switches + 1]bool
	buttons  [Buttons + 1]bool
	knob     int
}

func (s *SimInputs) SetSwitch(idx int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx >= 1 && idx <= Switches {
		s.switches[idx] = on
	}
}

func (s *SimInputs) SetButton(idx int, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx >= 1 && idx <= Buttons {
		s.buttons[idx] = pressed
	}
}

func (s *SimInputs) SetKnobRaw(v int) {
	s.mu.Lock()
	s.knob = v
	s.mu.Unlock()
}

func (s *SimInputs) Switch(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return idx >= 1 && idx <= Switches && s.switches[idx]
}

func (s *SimInputs) Button(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return idx >= 1 && idx <= Buttons && s.buttons[idx]
}

func (s *SimInputs) KnobRaw() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.knob
}

// SimSensors reports fixed readings, or Err when set.
type SimSensors struct {
	Accel   Vector
	Reading Climate
	Err     error
}

func (s *SimSensors) Acceleration() (Vector, error) { return s.Accel, s.Err }
func (s *SimSensors) Climate() (Climate, error)     { return s.Reading, s.Err }
