// SPDX-License-Identifier: EPL-2.0

// Package i2s defines the audio peripheral the engine drives and software
// stand-ins for it.
//
// Transmitter and Receiver are the two half-duplex streams of the board:
// a 16-bit mono speaker fed through a small queue of DMA buffers, and a
// 32-bit PDM microphone. The engine only sees these interfaces.
//
// DMAQueue is the hardware half of the transmit path. Something with a
// clock pulls from it: SimTransmitter uses a ticker, the desktop speaker in
// internal/hostaudio uses the sound card callback. Each finished buffer is
// announced on Consumed, which is what wakes the engine's transmit pump.
//
// SimReceiver plays any audio.Source into the microphone side, so
// recordings can be made from a WAV file on machines without a board.
package i2s
