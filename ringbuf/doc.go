// SPDX-License-Identifier: EPL-2.0

// Package ringbuf is the PCM frame ring between the audio producers (tone
// synthesizer, file streamer) and the transmit pump.
//
// The pump side must never block: ReadFrame is a bounded copy plus two
// atomic operations. Producers get back-pressure instead of overwriting:
// Write stops at the first frame it cannot claim and reports how much it
// took, and Freed wakes them when the pump releases a slot.
package ringbuf
