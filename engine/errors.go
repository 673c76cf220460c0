// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrSpeakerNotReady    = errors.New("speaker is not set up")
	ErrMicNotReady        = errors.New("microphone is not set up")
	ErrStorageUnavailable = errors.New("no storage card")
	ErrAlreadyRecording   = errors.New("already recording")
	ErrNotRecording       = errors.New("not recording")
	ErrUnsupportedFormat  = errors.New("unsupported sound file")
	ErrClosed             = errors.New("engine closed")
)
