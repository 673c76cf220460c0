// SPDX-License-Identifier: EPL-2.0

package board_test

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/yaudio/board"
	"github.com/ik5/yaudio/engine"
	"github.com/ik5/yaudio/i2s"
)

func Example() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	audio := engine.New(engine.WithLogger(logger))
	defer audio.Close()

	leds := board.NewSimLEDs(20)
	panel := &board.SimInputs{}

	b := board.New(audio, board.Peripherals{
		LEDs:    leds,
		Inputs:  panel,
		Speaker: i2s.NewSimTransmitter(nil, time.Millisecond),
	}, logger)

	fmt.Println("setup:", b.Setup())

	panel.SetButton(1, true)
	if b.GetButton(1) {
		b.SetAllLEDsColor(0, 255, 0)
		fmt.Println("notes:", b.PlayNotesBackground("T240 O4 A16 B16 C16>"))
	}
	fmt.Println("recording without a mic:", b.StartRecording("take.wav"))
	fmt.Println("first LED:", leds.Shown()[0])

	b.StopAudio()

	// Output:
	// setup: true
	// notes: true
	// recording without a mic: false
	// first LED: {0 255 0}
}
