// SPDX-License-Identifier: EPL-2.0

// Package hostaudio plays the board's speaker stream on the host through
// github.com/ebitengine/oto/v3.
//
// On Linux oto links ALSA through cgo. Build with the headless tag to drop
// the sound card and use a silent real-time clock instead.
package hostaudio
