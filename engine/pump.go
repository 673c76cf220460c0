// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/ik5/yaudio/i2s"

// pump moves one frame from the ring to the transmitter per finished DMA
// buffer. It never blocks on anything but the hardware notification, and
// an empty ring is not an error: the DMA plays silence on its own.
func (e *Engine) pump(tx i2s.Transmitter, consumed <-chan struct{}, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	frame := make([]int16, e.ring.FrameSize())

	for {
		select {
		case <-stop:
			return
		case <-consumed:
		}

		if !e.ring.ReadFrame(frame) {
			if e.active.Load() {
				e.underruns.Add(1)
			}
			continue
		}

		if err := tx.Write(frame); err != nil {
			e.dropped.Add(1)
			continue
		}
		e.framesSent.Add(1)
	}
}
