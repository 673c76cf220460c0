// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using github.com/jfreymuth/oggvorbis.
//
// The source hands out interleaved float32 values. Reads are trimmed to a
// whole number of frames so channel alignment survives short buffers.
package vorbis
