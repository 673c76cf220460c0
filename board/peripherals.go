// SPDX-License-Identifier: EPL-2.0

package board

// Color is one LED's RGB value.
type Color struct {
	R, G, B uint8
}

// LEDStrip is the addressable LED chain. Pixels take effect on Show.
type LEDStrip interface {
	Len() int
	SetPixel(index int, c Color)
	SetBrightness(b uint8)
	Show() error
}

// Inputs reads the front panel. Switch and button indexes start at 1.
type Inputs interface {
	Switch(idx int) bool
	Button(idx int) bool
	// KnobRaw is the raw 12-bit reading of the potentiometer.
	KnobRaw() int
}

// Vector is an acceleration in g.
type Vector struct {
	X, Y, Z float64
}

type Accelerometer interface {
	Acceleration() (Vector, error)
}

// Climate is a temperature and humidity reading.
type Climate struct {
	Celsius  float64
	Humidity float64
}

type Thermometer interface {
	Climate() (Climate, error)
}
