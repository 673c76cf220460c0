// SPDX-License-Identifier: EPL-2.0

// Command yaudio drives the board audio engine from a desktop: it plays
// notation and sound files on the host speaker, records from a file-backed
// microphone, filters and converts files, and serves the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/yaudio/engine"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	sampleRate    int
	micRate       int
	frameSize     int
	frames        int
	fileVolume    int
	recordingGain int
	sdRoot        string
	headless      bool
	verbose       bool

	outputFile string
	micSource  string
	seconds    float64
	cutoff     float64
	serverPort int
	ledCount   int
	trackName  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "yaudio",
	Short: "Play, record and shape board audio from the desktop",
	Long: `yaudio runs the board's audio engine on a desktop. The speaker is the
host sound card (or a silent clock with --headless) and the SD card is a
directory (or an in-memory card with --sd=:memory:).

Examples:
  yaudio notes "T180 O5 C D E F G"
  yaudio play song.wav --sd ./card
  yaudio record take.wav --from voice.mp3 --seconds 5
  yaudio lowpass take.wav soft.wav --cutoff 800
  yaudio render "C D E" -o scale.wav
  yaudio midi "C D E" -o scale.mid
  yaudio serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var notesCmd = &cobra.Command{
	Use:   "notes <notation>",
	Short: "Play a score on the speaker",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotes,
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Stream a sound file from the card to the speaker",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var recordCmd = &cobra.Command{
	Use:   "record <out.wav>",
	Short: "Record the microphone to a WAV file on the card",
	Long: `Record captures from a simulated microphone fed by --from, a sound file on
the card, until --seconds elapse or the command is interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

var lowpassCmd = &cobra.Command{
	Use:   "lowpass <in> <out.wav>",
	Short: "Low-pass filter a sound file into a new WAV",
	Args:  cobra.ExactArgs(2),
	RunE:  runLowPass,
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out.wav>",
	Short: "Rewrite a sound file as a WAV the speaker streams directly",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

var renderCmd = &cobra.Command{
	Use:   "render <notation>",
	Short: "Render a score to a WAV file without playing it",
	Long:  "Render a score to a WAV file without playing it. An output of - writes the WAV to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

var midiCmd = &cobra.Command{
	Use:   "midi <notation>",
	Short: "Export a score as a Standard MIDI File",
	Args:  cobra.ExactArgs(1),
	RunE:  runMIDI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP control API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	def := engine.DefaultConfig()

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&sampleRate, "rate", "r", def.SampleRate, "Speaker sample rate in Hz")
	pf.IntVar(&micRate, "mic-rate", def.MicSampleRate, "Microphone sample rate in Hz")
	pf.IntVar(&frameSize, "frame", def.FrameSize, "Samples per ring buffer frame")
	pf.IntVar(&frames, "frames", def.Frames, "Frames in the ring buffer")
	pf.IntVar(&fileVolume, "volume", def.FileVolume, "Sound file volume, 0 to 10")
	pf.IntVar(&recordingGain, "gain", def.RecordingGain, "Recording gain, 0 to 255")
	pf.StringVar(&sdRoot, "sd", ".", `SD card root directory, ":memory:" for an empty in-memory card, "" for none`)
	pf.BoolVar(&headless, "headless", false, "Use a silent clock instead of the sound card")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	recordCmd.Flags().StringVar(&micSource, "from", "", "Sound file feeding the microphone (required)")
	recordCmd.Flags().Float64Var(&seconds, "seconds", 5, "Recording length")
	_ = recordCmd.MarkFlagRequired("from")

	lowpassCmd.Flags().Float64Var(&cutoff, "cutoff", 1000, "Cutoff frequency in Hz")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .wav file path, or - for stdout (required)")
	_ = renderCmd.MarkFlagRequired("output")

	midiCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path (required)")
	midiCmd.Flags().StringVar(&trackName, "name", "", "Track name")
	_ = midiCmd.MarkFlagRequired("output")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")
	serveCmd.Flags().StringVar(&micSource, "from", "", "Sound file feeding the microphone")
	serveCmd.Flags().IntVar(&ledCount, "leds", 20, "Simulated LED count")

	rootCmd.AddCommand(notesCmd, playCmd, recordCmd, lowpassCmd, convertCmd, renderCmd, midiCmd, serveCmd)
}

func recordingLength() time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
