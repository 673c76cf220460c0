// SPDX-License-Identifier: EPL-2.0

// Package board is the API sketches program against. It wraps the audio
// engine and the simple peripherals (LED strip, switches, buttons, knob,
// accelerometer, temperature sensor) behind calls that return a bool and
// log their failures instead of returning errors.
//
// The peripheral drivers are interfaces; SimLEDs, SimInputs and
// SimSensors stand in for them off the board.
package board
