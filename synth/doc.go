// SPDX-License-Identifier: EPL-2.0

// Package synth turns note events into sine wave PCM.
//
// Amplitude is peak * volume/10, doubled below 800 Hz and scaled linearly
// back to 1x between 800 and 1100 Hz so low notes sound as loud as high ones
// on the board's small speaker. The first and last 2% of each note are a
// linear fade so consecutive notes do not click.
package synth
