// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/yaudio"
	"github.com/ik5/yaudio/board"
	"github.com/ik5/yaudio/engine"
	"github.com/ik5/yaudio/formats/wav"
	"github.com/ik5/yaudio/i2s"
	"github.com/ik5/yaudio/internal/api"
	"github.com/ik5/yaudio/internal/hostaudio"
	"github.com/ik5/yaudio/midiexport"
	"github.com/ik5/yaudio/storage"
)

const memoryCard = ":memory:"

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openStorage() (storage.FS, error) {
	switch sdRoot {
	case "":
		return nil, nil
	case memoryCard:
		return storage.NewMemFS(), nil
	}

	fs, err := storage.NewDirFS(sdRoot)
	if err != nil {
		return nil, fmt.Errorf("mounting SD card: %w", err)
	}
	return fs, nil
}

func config() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.MicSampleRate = micRate
	cfg.FrameSize = frameSize
	cfg.Frames = frames
	cfg.FileVolume = fileVolume
	cfg.RecordingGain = recordingGain
	return cfg
}

func newEngine(logger *slog.Logger) (*engine.Engine, storage.FS, error) {
	fs, err := openStorage()
	if err != nil {
		return nil, nil, err
	}

	opts := []engine.Option{
		engine.WithConfig(config()),
		engine.WithLogger(logger),
	}
	if fs != nil {
		opts = append(opts, engine.WithStorage(fs))
	}

	e := engine.New(opts...)
	// the config reads zero as unset
	if fileVolume == 0 {
		e.SetWaveVolume(0)
	}
	if recordingGain == 0 {
		e.SetRecordingGain(0)
	}

	return e, fs, nil
}

func newSpeaker() i2s.Transmitter {
	if headless || !hostaudio.Available {
		return i2s.NewSimTransmitter(nil, 0)
	}
	return hostaudio.NewSpeaker()
}

// withSpeaker runs fn on an engine whose speaker is set up.
func withSpeaker(fn func(e *engine.Engine) error) error {
	e, _, err := newEngine(newLogger())
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.SetupSpeaker(newSpeaker()); err != nil {
		return err
	}
	return fn(e)
}

func runNotes(cmd *cobra.Command, args []string) error {
	return withSpeaker(func(e *engine.Engine) error {
		return e.PlayNotes(cmd.Context(), args[0])
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	return withSpeaker(func(e *engine.Engine) error {
		return e.PlaySoundFile(cmd.Context(), args[0])
	})
}

func newMic(fs storage.FS) (i2s.Receiver, error) {
	if fs == nil {
		return nil, engine.ErrStorageUnavailable
	}

	src, err := engine.OpenSource(fs, engine.DefaultRegistry(), micSource)
	if err != nil {
		return nil, err
	}
	return i2s.NewSimReceiver(src, true), nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	e, fs, err := newEngine(newLogger())
	if err != nil {
		return err
	}
	defer e.Close()

	mic, err := newMic(fs)
	if err != nil {
		return err
	}
	if err := e.SetupMic(mic); err != nil {
		return err
	}
	if err := e.StartRecording(args[0]); err != nil {
		return err
	}

	timer := time.NewTimer(recordingLength())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-cmd.Context().Done():
	}

	if err := e.StopRecording(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", args[0])
	return nil
}

func runLowPass(cmd *cobra.Command, args []string) error {
	e, _, err := newEngine(newLogger())
	if err != nil {
		return err
	}
	defer e.Close()

	return e.ApplyLowPass(args[0], args[1], cutoff)
}

func runConvert(cmd *cobra.Command, args []string) error {
	e, _, err := newEngine(newLogger())
	if err != nil {
		return err
	}
	defer e.Close()

	return e.ConvertSoundFile(args[0], args[1])
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	if outputFile == "-" {
		samples, err := yaudio.RenderNotes(args[0], sampleRate)
		if err != nil {
			return err
		}
		return wav.WriteWAV16(cmd.OutOrStdout(), sampleRate, samples)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := yaudio.RenderNotesToWAV(f, args[0], sampleRate); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rendered to %s\n", outputFile)
	return nil
}

func runMIDI(cmd *cobra.Command, args []string) error {
	data, err := midiexport.Bytes(args[0], midiexport.Options{Name: trackName})
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write MIDI: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outputFile)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	e, fs, err := newEngine(logger)
	if err != nil {
		return err
	}
	defer e.Close()

	p := board.Peripherals{
		LEDs:    board.NewSimLEDs(ledCount),
		Inputs:  &board.SimInputs{},
		Accel:   &board.SimSensors{Accel: board.Vector{Z: 1}},
		Climate: &board.SimSensors{Reading: board.Climate{Celsius: 22, Humidity: 45}},
		Speaker: newSpeaker(),
	}
	if micSource != "" {
		mic, err := newMic(fs)
		if err != nil {
			return err
		}
		p.Mic = mic
	}

	b := board.New(e, p, logger)
	if !b.Setup() {
		logger.Warn("board setup incomplete")
	}

	return api.NewServer(b, logger).Run(cmd.Context(), serverPort)
}
