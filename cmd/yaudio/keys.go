// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ik5/yaudio/engine"
	"github.com/ik5/yaudio/notation"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Play the speaker from the keyboard",
	Long: `Keys turns the home row into a one-octave keyboard:

  a s d f g h j k   C D E F G A B C>
  z x               octave down, octave up
  space             stop
  q, Ctrl-C         quit`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

var pianoKeys = map[byte]string{
	'a': "C", 's': "D", 'd': "E", 'f': "F",
	'g': "G", 'h': "A", 'j': "B", 'k': "C>",
}

// keyboard turns key presses into notation.
type keyboard struct {
	octave int
}

func newKeyboard() *keyboard {
	return &keyboard{octave: notation.DefaultOctave}
}

// press returns the notation for key, or "" if the key only changed the
// keyboard or is unmapped.
func (k *keyboard) press(key byte) string {
	switch key {
	case 'z':
		k.octave = max(k.octave-1, notation.MinOctave)
		return ""
	case 'x':
		k.octave = min(k.octave+1, notation.MaxOctave)
		return ""
	}

	n, ok := pianoKeys[key]
	if !ok {
		return ""
	}
	return fmt.Sprintf("O%d %s8 ", k.octave, n)
}

func runKeys(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("keys needs a terminal on stdin")
	}

	return withSpeaker(func(e *engine.Engine) error {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to set raw mode: %w", err)
		}
		defer term.Restore(fd, old)

		fmt.Fprint(cmd.OutOrStdout(), "a-k play, z/x octave, space stops, q quits\r\n")

		return playKeys(cmd, e, os.Stdin)
	})
}

func playKeys(cmd *cobra.Command, e *engine.Engine, in io.Reader) error {
	kb := newKeyboard()
	buf := make([]byte, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		default:
		}

		if _, err := in.Read(buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("%w", err)
		}

		switch key := buf[0]; key {
		case 'q', 0x03, 0x04:
			return nil
		case ' ':
			e.StopAudio()
		default:
			if notes := kb.press(key); notes != "" {
				if err := e.AddNotes(notes); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\r\n", err)
				}
			}
		}
	}
}
