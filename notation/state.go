// SPDX-License-Identifier: EPL-2.0

package notation

// Bounds for the in-band controls. Values outside a range are ignored.
const (
	DefaultTempo  = 120
	DefaultOctave = 5
	DefaultVolume = 5

	MinTempo  = 40
	MaxTempo  = 240
	MinOctave = 4
	MaxOctave = 7
	MinVolume = 1
	MaxVolume = 10
)

// State is the tempo, octave and volume a score is currently played with.
// Only parsing mutates it.
type State struct {
	Tempo  int
	Octave int
	Volume int
}

// DefaultState is {120, 5, 5}.
func DefaultState() State {
	return State{
		Tempo:  DefaultTempo,
		Octave: DefaultOctave,
		Volume: DefaultVolume,
	}
}

// Reset restores the defaults, as the '!' control does.
func (s *State) Reset() {
	*s = DefaultState()
}

func (s *State) setTempo(v int) {
	if v >= MinTempo && v <= MaxTempo {
		s.Tempo = v
	}
}

func (s *State) setOctave(v int) {
	if v >= MinOctave && v <= MaxOctave {
		s.Octave = v
	}
}

func (s *State) setVolume(v int) {
	if v >= MinVolume && v <= MaxVolume {
		s.Volume = v
	}
}
