// SPDX-License-Identifier: EPL-2.0

package board

import (
	"context"
	"log/slog"

	"github.com/ik5/yaudio/engine"
	"github.com/ik5/yaudio/i2s"
)

// Panel layout.
const (
	Switches = 2
	Buttons  = 3

	DefaultBrightness = 50
	knobMax           = 4095
)

// Peripherals are the drivers the board was built with. Any of them may
// be nil; calls that need a missing one report failure.
type Peripherals struct {
	LEDs    LEDStrip
	Inputs  Inputs
	Accel   Accelerometer
	Climate Thermometer
	Speaker i2s.Transmitter
	Mic     i2s.Receiver
}

// Board is the sketch-facing API. Calls report success as a bool and log
// why they failed, so a sketch can ignore failures and keep running.
type Board struct {
	audio *engine.Engine
	p     Peripherals
	log   *slog.Logger
}

// New wraps audio and p. A nil logger selects slog.Default.
func New(audio *engine.Engine, p Peripherals, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{audio: audio, p: p, log: logger}
}

// Engine exposes the audio engine for callers that want errors instead of
// booleans.
func (b *Board) Engine() *engine.Engine { return b.audio }

func (b *Board) report(op string, err error) bool {
	if err == nil {
		return true
	}
	b.log.Warn(op+" failed", "err", err)
	return false
}

// Setup clears the LEDs and brings up the speaker and microphone when the
// board has them. It returns false if any of them failed; the rest keep
// working.
func (b *Board) Setup() bool {
	ok := true

	if b.p.LEDs != nil {
		for i := range b.p.LEDs.Len() {
			b.p.LEDs.SetPixel(i, Color{})
		}
		b.p.LEDs.SetBrightness(DefaultBrightness)
		ok = b.report("led setup", b.p.LEDs.Show()) && ok
	}
	if b.p.Speaker != nil {
		ok = b.SetupSpeaker() && ok
	}
	if b.p.Mic != nil {
		ok = b.SetupMic() && ok
	}

	return ok
}

func (b *Board) SetupSpeaker() bool {
	if b.p.Speaker == nil {
		return b.report("speaker setup", engine.ErrSpeakerNotReady)
	}
	return b.report("speaker setup", b.audio.SetupSpeaker(b.p.Speaker))
}

func (b *Board) SetupMic() bool {
	if b.p.Mic == nil {
		return b.report("microphone setup", engine.ErrMicNotReady)
	}
	return b.report("microphone setup", b.audio.SetupMic(b.p.Mic))
}

// SetLEDColor sets one LED, counted from 1 as printed on the board.
func (b *Board) SetLEDColor(index int, r, g, bl uint8) {
	if b.p.LEDs == nil || index < 1 || index > b.p.LEDs.Len() {
		return
	}
	b.p.LEDs.SetPixel(index-1, Color{r, g, bl})
	b.report("led update", b.p.LEDs.Show())
}

func (b *Board) SetAllLEDsColor(r, g, bl uint8) {
	if b.p.LEDs == nil {
		return
	}
	for i := range b.p.LEDs.Len() {
		b.p.LEDs.SetPixel(i, Color{r, g, bl})
	}
	b.report("led update", b.p.LEDs.Show())
}

func (b *Board) SetLEDBrightness(v uint8) {
	if b.p.LEDs != nil {
		b.p.LEDs.SetBrightness(v)
	}
}

func (b *Board) LEDCount() int {
	if b.p.LEDs == nil {
		return 0
	}
	return b.p.LEDs.Len()
}

// GetSwitch reports whether switch idx (1 or 2) is on.
func (b *Board) GetSwitch(idx int) bool {
	if b.p.Inputs == nil || idx < 1 || idx > Switches {
		return false
	}
	return b.p.Inputs.Switch(idx)
}

// GetButton reports whether button idx (1 to 3) is pressed.
func (b *Board) GetButton(idx int) bool {
	if b.p.Inputs == nil || idx < 1 || idx > Buttons {
		return false
	}
	return b.p.Inputs.Button(idx)
}

// GetKnob is the knob position from 0 to 100.
func (b *Board) GetKnob() int {
	if b.p.Inputs == nil {
		return 0
	}
	v := b.p.Inputs.KnobRaw() * 100 / knobMax
	return min(max(v, 0), 100)
}

func (b *Board) GetAccelerometer() (Vector, bool) {
	if b.p.Accel == nil {
		return Vector{}, false
	}
	v, err := b.p.Accel.Acceleration()
	return v, b.report("accelerometer read", err)
}

func (b *Board) GetTemperature() (Climate, bool) {
	if b.p.Climate == nil {
		return Climate{}, false
	}
	c, err := b.p.Climate.Climate()
	return c, b.report("temperature read", err)
}

// PlayNotes plays notes and returns when they have finished.
func (b *Board) PlayNotes(notes string) bool {
	return b.report("play notes", b.audio.PlayNotes(context.Background(), notes))
}

// PlayNotesBackground starts notes and returns at once.
func (b *Board) PlayNotesBackground(notes string) bool {
	return b.AddNotes(notes)
}

// AddNotes queues notes behind those already playing.
func (b *Board) AddNotes(notes string) bool {
	return b.report("add notes", b.audio.AddNotes(notes))
}

// PlaySoundFile plays a file from the card and returns when it ends.
func (b *Board) PlaySoundFile(path string) bool {
	return b.report("play sound file", b.audio.PlaySoundFile(context.Background(), path))
}

func (b *Board) PlaySoundFileBackground(path string) bool {
	return b.report("play sound file", b.audio.PlaySoundFileBackground(path))
}

// PlaySongFromSD is PlaySoundFile under its older name.
func (b *Board) PlaySongFromSD(path string) bool {
	return b.PlaySoundFile(path)
}

func (b *Board) StopAudio() { b.audio.StopAudio() }

// StopSpeaker is StopAudio.
func (b *Board) StopSpeaker() { b.StopAudio() }

func (b *Board) IsAudioPlaying() bool { return b.audio.IsAudioPlaying() }

// IsPlaying is IsAudioPlaying.
func (b *Board) IsPlaying() bool { return b.IsAudioPlaying() }

// SetWaveVolume sets the sound file volume from 0 to 10.
func (b *Board) SetWaveVolume(v uint8) { b.audio.SetWaveVolume(int(v)) }

// SetSoundFileVolume is SetWaveVolume.
func (b *Board) SetSoundFileVolume(v uint8) { b.SetWaveVolume(v) }

// SetSpeakerVolume sets the sound file volume from 0 to 100.
func (b *Board) SetSpeakerVolume(v uint8) { b.audio.SetSpeakerVolume(int(v)) }

// Loop lets background audio make progress. The engine runs on its own,
// so sketches may call it or not.
func (b *Board) Loop() { b.audio.Loop() }

// LoopSpeaker is Loop.
func (b *Board) LoopSpeaker() { b.Loop() }

// ApplyLowPass filters a file on the card into another.
func (b *Board) ApplyLowPass(in, out string, cutoff float64) bool {
	return b.report("low-pass", b.audio.ApplyLowPass(in, out, cutoff))
}

// ConvertSoundFile rewrites a file on the card as a WAV the speaker
// streams directly.
func (b *Board) ConvertSoundFile(in, out string) bool {
	return b.report("convert", b.audio.ConvertSoundFile(in, out))
}

func (b *Board) StartRecording(path string) bool {
	return b.report("start recording", b.audio.StartRecording(path))
}

// StopRecording returns once the file is complete.
func (b *Board) StopRecording() {
	b.report("stop recording", b.audio.StopRecording())
}

func (b *Board) IsRecording() bool { return b.audio.IsRecording() }

func (b *Board) SetRecordingGain(g uint8) { b.audio.SetRecordingGain(int(g)) }

// SetRecordingVolume is SetRecordingGain.
func (b *Board) SetRecordingVolume(g uint8) { b.SetRecordingGain(g) }
