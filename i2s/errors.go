// SPDX-License-Identifier: EPL-2.0

package i2s

import "errors"

var (
	ErrNotStarted     = errors.New("i2s stream not started")
	ErrAlreadyStarted = errors.New("i2s stream already started")
	ErrInvalidConfig  = errors.New("invalid i2s configuration")
	ErrQueueFull      = errors.New("i2s dma queue full")
	ErrReadTimeout    = errors.New("i2s read timed out")
)
